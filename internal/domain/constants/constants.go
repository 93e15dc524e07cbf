// Package constants holds identifiers shared across layers.
package constants

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Catalog event types
const (
	EventProductCreated  = "product.created"
	EventProductUpdated  = "product.updated"
	EventProductDeleted  = "product.deleted"
	EventCategoryCreated = "category.created"
	EventCategoryUpdated = "category.updated"
	EventCategoryDeleted = "category.deleted"
	EventStoreSaved      = "store.saved"
)

// Document store collections
const (
	CollectionProducts      = "products"
	CollectionCategories    = "categories"
	CollectionStoreSettings = "storeSettings"
)

// Session token type carried in the service-issued JWT
const SessionTokenType = "session"
