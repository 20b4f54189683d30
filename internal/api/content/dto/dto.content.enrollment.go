package contentdto

// EnrollmentCreateInput dữ liệu đầu vào khi ghi danh người dùng vào khóa học
type EnrollmentCreateInput struct {
	UserID   string `json:"userId" validate:"required" transform:"str_objectid"`
	CourseID string `json:"courseId" validate:"required" transform:"str_objectid"`
	Mode     string `json:"mode,omitempty" transform:"string,default=audit"`
}

// EnrollmentUpdateInput dữ liệu đầu vào khi cập nhật enrollment
type EnrollmentUpdateInput struct {
	Mode     string `json:"mode,omitempty"`
	IsActive *bool  `json:"isActive,omitempty"`
}
