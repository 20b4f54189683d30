package contenthdl

import (
	"fmt"

	basehdl "meta_learning/internal/api/base/handler"
	contentdto "meta_learning/internal/api/content/dto"
	contentmodels "meta_learning/internal/api/content/models"
	contentsvc "meta_learning/internal/api/content/service"
)

// EnrollmentHandler xử lý các request liên quan đến ghi danh khóa học
type EnrollmentHandler struct {
	*basehdl.BaseHandler[contentmodels.CourseEnrollment, contentdto.EnrollmentCreateInput, contentdto.EnrollmentUpdateInput]
	EnrollmentService *contentsvc.EnrollmentService
}

// NewEnrollmentHandler tạo mới EnrollmentHandler
func NewEnrollmentHandler() (*EnrollmentHandler, error) {
	enrollmentService, err := contentsvc.NewEnrollmentService()
	if err != nil {
		return nil, fmt.Errorf("failed to create enrollment service: %v", err)
	}
	hdl := &EnrollmentHandler{
		EnrollmentService: enrollmentService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[contentmodels.CourseEnrollment, contentdto.EnrollmentCreateInput, contentdto.EnrollmentUpdateInput](enrollmentService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}
