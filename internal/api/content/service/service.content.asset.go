package contentsvc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	basesvc "meta_learning/internal/api/base/service"
	contentmodels "meta_learning/internal/api/content/models"
	"meta_learning/internal/common"
	"meta_learning/internal/global"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StaticAssetService là service quản lý static asset của khóa học
type StaticAssetService struct {
	*basesvc.BaseServiceMongoImpl[contentmodels.StaticAsset]
}

// NewStaticAssetService tạo mới StaticAssetService
func NewStaticAssetService() (*StaticAssetService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.StaticAssets)
	if !exist {
		return nil, fmt.Errorf("failed to get static_assets collection: %v", common.ErrNotFound)
	}
	return &StaticAssetService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[contentmodels.StaticAsset](collection),
	}, nil
}

// HashContent tính SHA-256 hex của nội dung file
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FindByName tìm asset theo tên trong phạm vi một khóa học.
// Trả về common.ErrNotFound nếu khóa học không có asset với tên này.
func (s *StaticAssetService) FindByName(ctx context.Context, courseID primitive.ObjectID, name string) (contentmodels.StaticAsset, error) {
	filter := map[string]interface{}{"courseId": courseID, "name": name}
	return s.FindOne(ctx, filter, nil)
}
