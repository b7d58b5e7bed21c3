package entity

type BucketType string

const (
	Image BucketType = "image"
)

type File struct {
	Base
	Mime      string
	Name      string
	CreatedBy string `gorm:"not null"`
	User      User   `gorm:"foreignKey:CreatedBy"`
	Url       string
}
