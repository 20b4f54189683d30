package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObjectType định nghĩa các loại object có thể gắn tag
const (
	ObjectTypeCourse       = "course"
	ObjectTypeCourseBlock  = "course_block"
	ObjectTypeLibraryBlock = "library_block"
)

// ObjectTag gắn một giá trị tag lên một object (khóa học, block, ...).
// TagID nil nghĩa là giá trị free-text (taxonomy phải cho phép allowFreeText).
type ObjectTag struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của object tag

	ObjectType string             `json:"objectType" bson:"objectType" index:"compound:objecttag_object_taxonomy"`              // Loại object: course, course_block, library_block
	ObjectID   primitive.ObjectID `json:"objectId" bson:"objectId" index:"single:1,compound:objecttag_object_taxonomy"`         // ID của object được gắn tag
	TaxonomyID primitive.ObjectID `json:"taxonomyId" bson:"taxonomyId" index:"single:1,compound:objecttag_object_taxonomy"`     // Taxonomy của giá trị tag

	TagID *primitive.ObjectID `json:"tagId,omitempty" bson:"tagId,omitempty"` // Tag trong từ vựng (nil nếu free-text)
	Value string              `json:"value" bson:"value"`                     // Giá trị hiển thị (denormalize từ tag hoặc free text)

	// ===== ORGANIZATION =====
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1"` // Tổ chức sở hữu object được gắn tag

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian gắn tag
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
