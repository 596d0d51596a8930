package domain

// Recipe Model
type Recipe struct {
	ID       uint   `gorm:"primaryKey" json:"id"`              // Primary key
	SourceID int    `gorm:"unique;not null" json:"source_id"`  // Upstream recipe id, unique to block duplicate ingestion
	Title    string `gorm:"not null" json:"title"`             // Recipe title
	ImageURL string `gorm:"not null" json:"image_url"`         // Image reference
}
