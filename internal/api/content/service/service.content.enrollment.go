package contentsvc

import (
	"context"
	"fmt"

	basesvc "meta_learning/internal/api/base/service"
	contentmodels "meta_learning/internal/api/content/models"
	"meta_learning/internal/common"
	"meta_learning/internal/global"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EnrollmentService là service quản lý ghi danh khóa học
type EnrollmentService struct {
	*basesvc.BaseServiceMongoImpl[contentmodels.CourseEnrollment]
}

// NewEnrollmentService tạo mới EnrollmentService
func NewEnrollmentService() (*EnrollmentService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Enrollments)
	if !exist {
		return nil, fmt.Errorf("failed to get enrollments collection: %v", common.ErrNotFound)
	}
	return &EnrollmentService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[contentmodels.CourseEnrollment](collection),
	}, nil
}

// GetActiveEnrollments lấy các enrollment còn hiệu lực của một người dùng
func (s *EnrollmentService) GetActiveEnrollments(ctx context.Context, userID primitive.ObjectID) ([]contentmodels.CourseEnrollment, error) {
	filter := map[string]interface{}{"userId": userID, "isActive": true}
	return s.Find(ctx, filter, nil)
}
