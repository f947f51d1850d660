package entity

import (
	"github.com/fitchallenge/backend/pkg/enum"
)

type PhotoOrientation string

var (
	PhotoFront = enum.New(PhotoOrientation("FRONT"))
	PhotoSide  = enum.New(PhotoOrientation("SIDE"))
	PhotoBack  = enum.New(PhotoOrientation("BACK"))
)

// OrientationByOrder is the orientation of the photo at each order.
var OrientationByOrder = map[int]PhotoOrientation{
	1: PhotoFront,
	2: PhotoSide,
	3: PhotoBack,
}

// PhotoCount is the number of photos of every submission, one per orientation.
var PhotoCount = len(OrientationByOrder)

type Photo struct {
	Base

	SubmissionID string     `gorm:"size:36;not null;uniqueIndex:idx_photos_submission_order"`
	Submission   Submission `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE"`
	Order        int        `gorm:"column:photo_order;uniqueIndex:idx_photos_submission_order"`

	Orientation PhotoOrientation `gorm:"size:8"`
	URL         string           `gorm:"size:1024"`
	FileName    string           `gorm:"size:255"`
	FileSize    int64
	MimeType    string `gorm:"size:64"`
}
