// Package model holds the document shapes stored in the document store.
package model

import "time"

// ImageModel is an upload handle embedded into a document.
type ImageModel struct {
	URL  string `firestore:"url"`
	Path string `firestore:"path"`
	Alt  string `firestore:"alt,omitempty"`
}

// ProductModel is the document stored in the 'products' collection.
//
// Images holds either ImageModel maps or, in documents written by the earlier schema,
// bare URL strings. Category is the earlier single-category field; it is only ever read.
type ProductModel struct {
	ID          string      `firestore:"-"`
	Name        string      `firestore:"name"`
	Description string      `firestore:"description"`
	Price       float64     `firestore:"price"`
	Stock       int         `firestore:"stock"`
	Categories  []string    `firestore:"categories"`
	Category    string      `firestore:"category,omitempty"`
	Color       string      `firestore:"color,omitempty"`
	Size        string      `firestore:"size,omitempty"`
	Brand       string      `firestore:"brand,omitempty"`
	Images      []any       `firestore:"images"`
	MainImage   *ImageModel `firestore:"mainImage,omitempty"`
	Status      string      `firestore:"status"`
	UserID      string      `firestore:"userId"`
	CreatedAt   time.Time   `firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time   `firestore:"updatedAt,serverTimestamp"`
}
