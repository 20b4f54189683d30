package contentdto

// ContentLibraryCreateInput dữ liệu đầu vào khi tạo thư viện nội dung
type ContentLibraryCreateInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

// ContentLibraryUpdateInput dữ liệu đầu vào khi cập nhật thư viện nội dung
type ContentLibraryUpdateInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// LibraryBlockCreateInput dữ liệu đầu vào khi tạo block trong thư viện
type LibraryBlockCreateInput struct {
	LibraryID   string                 `json:"libraryId" validate:"required" transform:"str_objectid"`
	BlockType   string                 `json:"blockType" validate:"required"`
	DisplayName string                 `json:"displayName,omitempty"`
	Definition  map[string]interface{} `json:"definition,omitempty"`
}

// LibraryBlockUpdateInput dữ liệu đầu vào khi cập nhật block trong thư viện
type LibraryBlockUpdateInput struct {
	DisplayName string                 `json:"displayName,omitempty"`
	Definition  map[string]interface{} `json:"definition,omitempty"`
}

// LibrarySyncParams params từ URL khi đồng bộ block từ thư viện vào khóa học
type LibrarySyncParams struct {
	ID       string `uri:"id" validate:"required" transform:"str_objectid"`
	CourseID string `uri:"courseId" validate:"required" transform:"str_objectid"`
}
