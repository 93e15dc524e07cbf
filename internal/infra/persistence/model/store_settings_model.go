package model

import "time"

// StoreSettingsModel is the document stored in the 'storeSettings' collection under the owner id.
type StoreSettingsModel struct {
	ID          string      `firestore:"-"`
	UserID      string      `firestore:"userId"`
	Name        string      `firestore:"name"`
	Description string      `firestore:"description"`
	Phone       string      `firestore:"phone"`
	Email       string      `firestore:"email"`
	Address     string      `firestore:"address"`
	OpeningTime string      `firestore:"openingTime"`
	ClosingTime string      `firestore:"closingTime"`
	WorkingDays []string    `firestore:"workingDays"`
	Logo        *ImageModel `firestore:"logo,omitempty"`
	BannerImage *ImageModel `firestore:"bannerImage,omitempty"`
	CreatedAt   time.Time   `firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time   `firestore:"updatedAt,serverTimestamp"`
}
