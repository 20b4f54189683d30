// Package taggingdto - DTO đầu vào cho domain Tagging.
package taggingdto

// TaxonomyCreateInput dữ liệu đầu vào khi tạo taxonomy
type TaxonomyCreateInput struct {
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description,omitempty"`
	AllowMultiple bool   `json:"allowMultiple,omitempty"`
	AllowFreeText bool   `json:"allowFreeText,omitempty"`
	OrgScope      string `json:"orgScope,omitempty" transform:"string,default=allOrgs" validate:"omitempty,oneof=allOrgs listedOrgs noOrgs"`
}

// TaxonomyUpdateInput dữ liệu đầu vào khi cập nhật taxonomy.
// OrgScope và orgIds chỉ đổi được qua endpoint set-orgs.
type TaxonomyUpdateInput struct {
	Name          string `json:"name,omitempty"`
	Description   string `json:"description,omitempty"`
	Enabled       bool   `json:"enabled,omitempty"`
	AllowMultiple bool   `json:"allowMultiple,omitempty"`
	AllowFreeText bool   `json:"allowFreeText,omitempty"`
}

// TaxonomySetOrgsInput dữ liệu đầu vào khi đổi phạm vi tổ chức của taxonomy
type TaxonomySetOrgsInput struct {
	OrgScope string   `json:"orgScope" validate:"required,oneof=allOrgs listedOrgs noOrgs"`
	OrgIDs   []string `json:"orgIds,omitempty"`
}

// TaxonomyIDParams params từ URL cho các thao tác trên một taxonomy
type TaxonomyIDParams struct {
	ID string `uri:"id" validate:"required" transform:"str_objectid"`
}

// TagCreateInput dữ liệu đầu vào khi tạo tag
type TagCreateInput struct {
	TaxonomyID string `json:"taxonomyId" validate:"required" transform:"str_objectid"`
	Value      string `json:"value" validate:"required"`
	ExternalID string `json:"externalId,omitempty"`
	ParentID   string `json:"parentId,omitempty" transform:"str_objectid_ptr,optional"`
}

// TagUpdateInput dữ liệu đầu vào khi cập nhật tag
type TagUpdateInput struct {
	Value      string `json:"value,omitempty"`
	ExternalID string `json:"externalId,omitempty"`
}

// ObjectTagApplyInput dữ liệu đầu vào khi gắn tag lên object.
// Values rỗng nghĩa là gỡ toàn bộ tag của object trong taxonomy.
type ObjectTagApplyInput struct {
	TaxonomyID string   `json:"taxonomyId" validate:"required" transform:"str_objectid"`
	ObjectType string   `json:"objectType" validate:"required,oneof=course course_block library_block"`
	ObjectID   string   `json:"objectId" validate:"required" transform:"str_objectid"`
	Values     []string `json:"values"`
}

// ObjectTagListParams params từ URL khi lấy tag của một object
type ObjectTagListParams struct {
	ObjectType string `uri:"objectType" validate:"required,oneof=course course_block library_block"`
	ObjectID   string `uri:"objectId" validate:"required" transform:"str_objectid"`
}
