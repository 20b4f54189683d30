package contentdto

// CourseBlockCreateInput dữ liệu đầu vào khi tạo block nội dung.
// Position không nhận từ client — block mới luôn được append vào cuối danh sách sibling.
type CourseBlockCreateInput struct {
	CourseID             string                 `json:"courseId" validate:"required" transform:"str_objectid"`
	ParentID             string                 `json:"parentId,omitempty" transform:"str_objectid_ptr,optional"`
	BlockType            string                 `json:"blockType" validate:"required"`
	DisplayName          string                 `json:"displayName,omitempty"`
	Definition           map[string]interface{} `json:"definition,omitempty"`
	SourceLibraryBlockID string                 `json:"sourceLibraryBlockId,omitempty" transform:"str_objectid_ptr,optional"`
}

// CourseBlockUpdateInput dữ liệu đầu vào khi cập nhật block nội dung
type CourseBlockUpdateInput struct {
	DisplayName string                 `json:"displayName,omitempty"`
	Definition  map[string]interface{} `json:"definition,omitempty"`
}

// CourseBlockTreeParams params từ URL khi lấy subtree của một block
type CourseBlockTreeParams struct {
	ID string `uri:"id" validate:"required" transform:"str_objectid"`
}

// CourseBlockChildrenParams params từ URL khi lấy children của một block
type CourseBlockChildrenParams struct {
	ID string `uri:"id" validate:"required" transform:"str_objectid"`
}
