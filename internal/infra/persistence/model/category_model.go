package model

import "time"

// CategoryModel is the document stored in the 'categories' collection.
type CategoryModel struct {
	ID          string    `firestore:"-"`
	Name        string    `firestore:"name"`
	Description string    `firestore:"description"`
	Color       string    `firestore:"color"`
	IsDefault   bool      `firestore:"isDefault"`
	UserID      string    `firestore:"userId"`
	CreatedAt   time.Time `firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time `firestore:"updatedAt,serverTimestamp"`
}
