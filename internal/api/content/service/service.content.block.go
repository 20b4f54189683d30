package contentsvc

import (
	"context"
	"fmt"

	basesvc "meta_learning/internal/api/base/service"
	contentmodels "meta_learning/internal/api/content/models"
	"meta_learning/internal/common"
	"meta_learning/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CourseBlockService là service quản lý cây block nội dung của khóa học
type CourseBlockService struct {
	*basesvc.BaseServiceMongoImpl[contentmodels.CourseBlock]
}

// NewCourseBlockService tạo mới CourseBlockService
func NewCourseBlockService() (*CourseBlockService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CourseBlocks)
	if !exist {
		return nil, fmt.Errorf("failed to get course_blocks collection: %v", common.ErrNotFound)
	}
	return &CourseBlockService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[contentmodels.CourseBlock](collection),
	}, nil
}

// GetChildren lấy các block con trực tiếp của một parent, sắp theo position tăng dần
func (s *CourseBlockService) GetChildren(ctx context.Context, courseID primitive.ObjectID, parentID *primitive.ObjectID) ([]contentmodels.CourseBlock, error) {
	filter := map[string]interface{}{"courseId": courseID}
	if parentID != nil {
		filter["parentId"] = *parentID
	} else {
		filter["parentId"] = nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	return s.Find(ctx, filter, opts)
}

// NextPosition trả về position kế tiếp cho một block mới dưới parent
// (max position hiện tại + 1; 0 nếu chưa có sibling nào).
func (s *CourseBlockService) NextPosition(ctx context.Context, courseID primitive.ObjectID, parentID *primitive.ObjectID) (int, error) {
	filter := map[string]interface{}{"courseId": courseID}
	if parentID != nil {
		filter["parentId"] = *parentID
	} else {
		filter["parentId"] = nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: -1}}).SetLimit(1)
	siblings, err := s.Find(ctx, filter, opts)
	if err != nil {
		return 0, err
	}
	if len(siblings) == 0 {
		return 0, nil
	}
	return siblings[0].Position + 1, nil
}

// GetSubtree lấy block root và tất cả descendant (đệ quy).
// Kết quả theo thứ tự pre-order: root trước, mỗi nhánh con theo position.
func (s *CourseBlockService) GetSubtree(ctx context.Context, rootID primitive.ObjectID) ([]contentmodels.CourseBlock, error) {
	root, err := s.FindOneById(ctx, rootID)
	if err != nil {
		return nil, err
	}
	result := []contentmodels.CourseBlock{root}
	if err := s.collectDescendants(ctx, root, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *CourseBlockService) collectDescendants(ctx context.Context, node contentmodels.CourseBlock, acc *[]contentmodels.CourseBlock) error {
	children, err := s.GetChildren(ctx, node.CourseID, &node.ID)
	if err != nil {
		return err
	}
	for _, child := range children {
		*acc = append(*acc, child)
		if err := s.collectDescendants(ctx, child, acc); err != nil {
			return err
		}
	}
	return nil
}
