package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tag là một giá trị trong bộ từ vựng của taxonomy.
// Value là duy nhất trong phạm vi một taxonomy.
type Tag struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của tag

	TaxonomyID primitive.ObjectID  `json:"taxonomyId" bson:"taxonomyId" index:"single:1,compound:tag_taxonomy_value_unique"` // Taxonomy chứa tag
	Value      string              `json:"value" bson:"value" index:"compound:tag_taxonomy_value_unique"`                    // Giá trị tag (vd: "English", "vi")
	ExternalID string              `json:"externalId,omitempty" bson:"externalId,omitempty"`                                 // Mã ngoài (vd: mã ngôn ngữ ISO cho taxonomy Language)
	ParentID   *primitive.ObjectID `json:"parentId,omitempty" bson:"parentId,omitempty"`                                     // Tag cha (taxonomy phân cấp), nil nếu là tag gốc

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
