package contentsvc

import (
	"context"
	"fmt"

	basesvc "meta_learning/internal/api/base/service"
	contentmodels "meta_learning/internal/api/content/models"
	"meta_learning/internal/common"
	"meta_learning/internal/global"
	"meta_learning/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentLibraryService là service quản lý thư viện nội dung dùng chung
type ContentLibraryService struct {
	*basesvc.BaseServiceMongoImpl[contentmodels.ContentLibrary]
}

// NewContentLibraryService tạo mới ContentLibraryService
func NewContentLibraryService() (*ContentLibraryService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ContentLibraries)
	if !exist {
		return nil, fmt.Errorf("failed to get content_libraries collection: %v", common.ErrNotFound)
	}
	return &ContentLibraryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[contentmodels.ContentLibrary](collection),
	}, nil
}

// LibraryBlockService là service quản lý block trong thư viện nội dung
type LibraryBlockService struct {
	*basesvc.BaseServiceMongoImpl[contentmodels.LibraryBlock]
}

// NewLibraryBlockService tạo mới LibraryBlockService
func NewLibraryBlockService() (*LibraryBlockService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.LibraryBlocks)
	if !exist {
		return nil, fmt.Errorf("failed to get library_blocks collection: %v", common.ErrNotFound)
	}
	return &LibraryBlockService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[contentmodels.LibraryBlock](collection),
	}, nil
}

// GetBlocksByLibrary lấy tất cả block của một thư viện
func (s *LibraryBlockService) GetBlocksByLibrary(ctx context.Context, libraryID primitive.ObjectID) ([]contentmodels.LibraryBlock, error) {
	filter := map[string]interface{}{"libraryId": libraryID}
	return s.Find(ctx, filter, nil)
}

// LibrarySyncPair ghép một block thư viện với course block tương ứng (khớp theo
// sourceLibraryBlockId).
type LibrarySyncPair struct {
	Library contentmodels.LibraryBlock
	Course  contentmodels.CourseBlock
}

// LibrarySyncDiff phân loại block khi đồng bộ thư viện vào khóa học.
type LibrarySyncDiff struct {
	Matched []LibrarySyncPair  // Cập nhật tại chỗ, giữ nguyên ID course block
	Added   []contentmodels.LibraryBlock // Block mới trong thư viện, chưa có trong khóa học
	Removed []contentmodels.CourseBlock  // Course block có nguồn không còn trong thư viện
}

// DiffLibraryBlocks so khớp block thư viện với course block theo sourceLibraryBlockId.
// Course block không mang sourceLibraryBlockId không thuộc phạm vi đồng bộ và bị bỏ qua.
func DiffLibraryBlocks(libraryBlocks []contentmodels.LibraryBlock, courseBlocks []contentmodels.CourseBlock) LibrarySyncDiff {
	byID := make(map[primitive.ObjectID]contentmodels.LibraryBlock, len(libraryBlocks))
	for _, lb := range libraryBlocks {
		byID[lb.ID] = lb
	}

	matchedSource := make(map[primitive.ObjectID]bool)
	var diff LibrarySyncDiff
	for _, cb := range courseBlocks {
		if cb.SourceLibraryBlockID == nil {
			continue
		}
		if lb, ok := byID[*cb.SourceLibraryBlockID]; ok {
			diff.Matched = append(diff.Matched, LibrarySyncPair{Library: lb, Course: cb})
			matchedSource[lb.ID] = true
		} else {
			diff.Removed = append(diff.Removed, cb)
		}
	}
	for _, lb := range libraryBlocks {
		if !matchedSource[lb.ID] {
			diff.Added = append(diff.Added, lb)
		}
	}
	return diff
}

// SyncCourseBlocks đồng bộ nội dung mới nhất từ thư viện vào khóa học:
// block đã khớp được cập nhật tại chỗ (ID và sourceLibraryBlockId giữ nguyên để
// không làm mồ côi progress của học viên), block mới trong thư viện được thêm vào
// cuối container, course block có nguồn đã biến mất khỏi thư viện bị xóa.
// Container là parent của các block đã khớp — chưa có block nào khớp thì không xác
// định được vị trí nên chỉ cập nhật, không thêm/xóa. Trả về tổng số block thay đổi.
func (s *LibraryBlockService) SyncCourseBlocks(ctx context.Context, blockSvc *CourseBlockService, libraryID primitive.ObjectID, courseID primitive.ObjectID) (int64, error) {
	libraryBlocks, err := s.GetBlocksByLibrary(ctx, libraryID)
	if err != nil {
		return 0, err
	}
	if len(libraryBlocks) == 0 {
		return 0, nil
	}

	courseBlocks, err := blockSvc.Find(ctx, map[string]interface{}{
		"courseId":             courseID,
		"sourceLibraryBlockId": bson.M{"$ne": nil},
	}, nil)
	if err != nil && err != common.ErrNotFound {
		return 0, err
	}

	diff := DiffLibraryBlocks(libraryBlocks, courseBlocks)

	var changed int64
	now := utility.CurrentTimeInMilli()
	for _, pair := range diff.Matched {
		update := bson.M{"$set": bson.M{
			"displayName": pair.Library.DisplayName,
			"definition":  pair.Library.Definition,
			"updatedAt":   now,
		}}
		if _, err := blockSvc.UpdateOne(ctx, bson.M{"_id": pair.Course.ID}, update, nil); err != nil {
			return changed, err
		}
		changed++
	}
	if len(diff.Matched) == 0 {
		return changed, nil
	}

	// Parent chứa các block của thư viện này trong khóa học
	anchor := diff.Matched[0].Course
	anchorParents := make(map[string]bool)
	for _, pair := range diff.Matched {
		key := ""
		if pair.Course.ParentID != nil {
			key = pair.Course.ParentID.Hex()
		}
		anchorParents[key] = true
	}

	for _, lb := range diff.Added {
		position, err := blockSvc.NextPosition(ctx, courseID, anchor.ParentID)
		if err != nil {
			return changed, err
		}
		sourceID := lb.ID
		newBlock := contentmodels.CourseBlock{
			CourseID:             courseID,
			ParentID:             anchor.ParentID,
			Position:             position,
			BlockType:            lb.BlockType,
			DisplayName:          lb.DisplayName,
			Definition:           lb.Definition,
			SourceLibraryBlockID: &sourceID,
			OwnerOrganizationID:  anchor.OwnerOrganizationID,
		}
		if _, err := blockSvc.InsertOne(ctx, newBlock); err != nil {
			return changed, err
		}
		changed++
	}

	// Chỉ xóa block nằm trong container của thư viện này và có nguồn đã biến mất
	// khỏi toàn bộ library_blocks — nguồn còn tồn tại nghĩa là block thuộc thư viện khác.
	var candidates []contentmodels.CourseBlock
	var danglingSources []primitive.ObjectID
	for _, cb := range diff.Removed {
		key := ""
		if cb.ParentID != nil {
			key = cb.ParentID.Hex()
		}
		if !anchorParents[key] {
			continue
		}
		candidates = append(candidates, cb)
		danglingSources = append(danglingSources, *cb.SourceLibraryBlockID)
	}
	if len(candidates) > 0 {
		stillExisting, err := s.FindManyByIds(ctx, danglingSources)
		if err != nil && err != common.ErrNotFound {
			return changed, err
		}
		existingSet := make(map[primitive.ObjectID]bool, len(stillExisting))
		for _, lb := range stillExisting {
			existingSet[lb.ID] = true
		}
		var removeIDs []primitive.ObjectID
		for _, cb := range candidates {
			if !existingSet[*cb.SourceLibraryBlockID] {
				removeIDs = append(removeIDs, cb.ID)
			}
		}
		if len(removeIDs) > 0 {
			removed, err := blockSvc.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": removeIDs}})
			if err != nil && err != common.ErrNotFound {
				return changed, err
			}
			changed += removed
		}
	}
	return changed, nil
}
