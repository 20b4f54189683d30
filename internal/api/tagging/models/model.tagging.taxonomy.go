// Package models - Các model thuộc domain Tagging: taxonomy, tag, object tag.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrgScope định nghĩa phạm vi tổ chức của một taxonomy
const (
	OrgScopeAllOrgs    = "allOrgs"    // Mọi tổ chức đều dùng được taxonomy này
	OrgScopeListedOrgs = "listedOrgs" // Chỉ các tổ chức trong orgIds dùng được
	OrgScopeNoOrgs     = "noOrgs"     // Không tổ chức nào dùng được (taxonomy bị thu hồi)
)

// Taxonomy là một bộ từ vựng gắn tag (ví dụ: Language, Subject, Difficulty).
// OrgScope quyết định tổ chức nào được phép gắn tag bằng taxonomy này.
type Taxonomy struct {
	_Relationships struct{}           `relationship:"collection:tags,field:taxonomyId,message:Không thể xóa taxonomy vì có %d tag. Vui lòng xóa tag trước.|collection:object_tags,field:taxonomyId,message:Không thể xóa taxonomy vì có %d object tag đang dùng."`
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của taxonomy

	Name        string `json:"name" bson:"name" index:"single:1"`                  // Tên taxonomy
	Description string `json:"description,omitempty" bson:"description,omitempty"` // Mô tả taxonomy

	Enabled       bool `json:"enabled" bson:"enabled" default:"true"`       // Taxonomy có đang hoạt động không
	AllowMultiple bool `json:"allowMultiple" bson:"allowMultiple"`          // Cho phép gắn nhiều tag cùng taxonomy lên một object
	AllowFreeText bool `json:"allowFreeText" bson:"allowFreeText"`          // Cho phép giá trị tự do ngoài danh sách tag
	SystemDefined bool `json:"systemDefined" bson:"systemDefined"`          // Taxonomy hệ thống (vd: Language) — không cho sửa/xóa

	OrgScope string               `json:"orgScope" bson:"orgScope" index:"single:1" default:"allOrgs"` // Phạm vi tổ chức: allOrgs, listedOrgs, noOrgs
	OrgIDs   []primitive.ObjectID `json:"orgIds,omitempty" bson:"orgIds,omitempty"`                    // Danh sách tổ chức khi orgScope = listedOrgs

	// ===== ORGANIZATION =====
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId" index:"single:1"` // Tổ chức sở hữu taxonomy (phân quyền quản trị)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
