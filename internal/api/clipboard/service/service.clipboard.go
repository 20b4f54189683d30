package clipboardsvc

import (
	"context"
	"fmt"

	basesvc "meta_learning/internal/api/base/service"
	clipboardmodels "meta_learning/internal/api/clipboard/models"
	contentmodels "meta_learning/internal/api/content/models"
	contentsvc "meta_learning/internal/api/content/service"
	"meta_learning/internal/common"
	"meta_learning/internal/global"
	"meta_learning/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClipboardService là service copy/paste nội dung giữa các khóa học
type ClipboardService struct {
	*basesvc.BaseServiceMongoImpl[clipboardmodels.ClipboardEntry]
	CourseService      *contentsvc.CourseService
	CourseBlockService *contentsvc.CourseBlockService
	StaticAssetService *contentsvc.StaticAssetService
}

// NewClipboardService tạo mới ClipboardService
func NewClipboardService() (*ClipboardService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ClipboardEntries)
	if !exist {
		return nil, fmt.Errorf("failed to get clipboard_entries collection: %v", common.ErrNotFound)
	}
	courseService, err := contentsvc.NewCourseService()
	if err != nil {
		return nil, fmt.Errorf("failed to create course service: %v", err)
	}
	blockService, err := contentsvc.NewCourseBlockService()
	if err != nil {
		return nil, fmt.Errorf("failed to create course block service: %v", err)
	}
	assetService, err := contentsvc.NewStaticAssetService()
	if err != nil {
		return nil, fmt.Errorf("failed to create static asset service: %v", err)
	}
	return &ClipboardService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[clipboardmodels.ClipboardEntry](collection),
		CourseService:        courseService,
		CourseBlockService:   blockService,
		StaticAssetService:   assetService,
	}, nil
}

// GetEntry lấy clipboard entry hiện tại của một người dùng
func (s *ClipboardService) GetEntry(ctx context.Context, userID primitive.ObjectID) (clipboardmodels.ClipboardEntry, error) {
	filter := map[string]interface{}{"userId": userID}
	return s.FindOne(ctx, filter, nil)
}

// Copy serialize subtree của một block vào clipboard của người dùng.
// Mỗi người dùng chỉ có một entry — copy mới ghi đè entry cũ.
// Manifest asset ghi lại tên + content hash của các asset được tham chiếu trong subtree
// tại thời điểm copy.
func (s *ClipboardService) Copy(ctx context.Context, userID primitive.ObjectID, blockID primitive.ObjectID) (clipboardmodels.ClipboardEntry, error) {
	var zero clipboardmodels.ClipboardEntry

	root, err := s.CourseBlockService.FindOneById(ctx, blockID)
	if err != nil {
		return zero, err
	}

	subtree, err := s.CourseBlockService.GetSubtree(ctx, blockID)
	if err != nil {
		return zero, err
	}

	// Dựng map parent → children (đã sắp theo position vì GetSubtree duyệt theo GetChildren)
	childrenOf := make(map[string][]contentmodels.CourseBlock)
	for _, block := range subtree[1:] {
		if block.ParentID != nil {
			key := block.ParentID.Hex()
			childrenOf[key] = append(childrenOf[key], block)
		}
	}
	staged := BuildStagedTree(root, childrenOf)

	// Manifest: hash của từng asset được tham chiếu, lấy từ khóa học nguồn.
	// Asset được tham chiếu nhưng không tồn tại trong khóa học nguồn thì bỏ qua.
	var assets []clipboardmodels.StagedAsset
	for _, name := range CollectAssetReferences(staged) {
		asset, err := s.StaticAssetService.FindByName(ctx, root.CourseID, name)
		if err != nil {
			if err == common.ErrNotFound {
				continue
			}
			return zero, err
		}
		assets = append(assets, clipboardmodels.StagedAsset{Name: name, ContentHash: asset.ContentHash})
	}

	entry := clipboardmodels.ClipboardEntry{
		UserID:              userID,
		SourceBlockID:       root.ID,
		SourceCourseID:      root.CourseID,
		SourceTitle:         root.DisplayName,
		Content:             staged,
		Assets:              assets,
		OwnerOrganizationID: root.OwnerOrganizationID,
	}

	filter := map[string]interface{}{"userId": userID}
	return s.Upsert(ctx, filter, entryUpsertSet(entry))
}

// PasteResult là kết quả của một lần paste: ID block root mới và report asset.
type PasteResult struct {
	RootBlockID primitive.ObjectID `json:"rootBlockId"`
	Assets      *AssetCopyReport   `json:"assets"`
}

// Paste dựng lại subtree trong clipboard tại vị trí đích.
// Block mới được append vào cuối danh sách sibling đích — thứ tự các block hiện có
// không bao giờ thay đổi. Chỉ root mang copiedFromBlockId; sourceLibraryBlockId giữ
// nguyên trên mọi block. Asset trong manifest được copy theo DecideAssetAction.
func (s *ClipboardService) Paste(ctx context.Context, userID primitive.ObjectID, destCourseID primitive.ObjectID, destParentID *primitive.ObjectID) (*PasteResult, error) {
	entry, err := s.GetEntry(ctx, userID)
	if err != nil {
		return nil, err
	}

	destCourse, err := s.CourseService.FindOneById(ctx, destCourseID)
	if err != nil {
		return nil, err
	}

	if destParentID != nil {
		parent, err := s.CourseBlockService.FindOneById(ctx, *destParentID)
		if err != nil {
			return nil, err
		}
		if parent.CourseID != destCourseID {
			return nil, common.NewError(
				common.ErrCodeValidationInput,
				"Block cha đích không thuộc khóa học đích",
				common.StatusBadRequest,
				nil,
			)
		}
	}

	position, err := s.CourseBlockService.NextPosition(ctx, destCourseID, destParentID)
	if err != nil {
		return nil, err
	}

	blocks := ExpandStagedTree(entry.Content, destCourseID, destParentID, destCourse.OwnerOrganizationID, position, entry.SourceBlockID)
	if _, err := s.CourseBlockService.InsertMany(ctx, blocks); err != nil {
		return nil, err
	}

	report := s.copyAssets(ctx, entry, destCourse)
	return &PasteResult{RootBlockID: blocks[0].ID, Assets: report}, nil
}

// copyAssets copy các asset trong manifest sang khóa học đích.
// Lỗi từng asset không làm fail cả lần paste — asset lỗi được gom vào report.Errored.
func (s *ClipboardService) copyAssets(ctx context.Context, entry clipboardmodels.ClipboardEntry, destCourse contentmodels.Course) *AssetCopyReport {
	report := NewAssetCopyReport()
	for _, staged := range entry.Assets {
		existing, err := s.StaticAssetService.FindByName(ctx, destCourse.ID, staged.Name)
		var existingPtr *contentmodels.StaticAsset
		if err == nil {
			existingPtr = &existing
		} else if err != common.ErrNotFound {
			logger.GetAppLogger().WithError(err).WithField("asset", staged.Name).Warn("[Clipboard] Lỗi đọc asset đích khi paste")
			report.Errored = append(report.Errored, staged.Name)
			continue
		}

		switch DecideAssetAction(existingPtr, staged.ContentHash) {
		case AssetActionSkip:
			// Trùng tên, trùng hash — bỏ qua êm, không vào report
		case AssetActionConflict:
			report.Conflicting = append(report.Conflicting, staged.Name)
		case AssetActionCopy:
			source, err := s.StaticAssetService.FindByName(ctx, entry.SourceCourseID, staged.Name)
			if err != nil {
				logger.GetAppLogger().WithError(err).WithField("asset", staged.Name).Warn("[Clipboard] Lỗi đọc asset nguồn khi paste")
				report.Errored = append(report.Errored, staged.Name)
				continue
			}
			copied := contentmodels.StaticAsset{
				CourseID:            destCourse.ID,
				Name:                source.Name,
				ContentHash:         source.ContentHash,
				ContentType:         source.ContentType,
				Size:                source.Size,
				Data:                source.Data,
				OwnerOrganizationID: destCourse.OwnerOrganizationID,
			}
			if _, err := s.StaticAssetService.InsertOne(ctx, copied); err != nil {
				logger.GetAppLogger().WithError(err).WithField("asset", staged.Name).Warn("[Clipboard] Lỗi ghi asset đích khi paste")
				report.Errored = append(report.Errored, staged.Name)
				continue
			}
			report.New = append(report.New, staged.Name)
		}
	}
	return report
}

// entryUpsertSet chuyển entry thành UpdateData $set cho Upsert (ghi đè toàn bộ nội dung entry).
func entryUpsertSet(entry clipboardmodels.ClipboardEntry) *basesvc.UpdateData {
	return &basesvc.UpdateData{Set: bson.M{
		"userId":              entry.UserID,
		"sourceBlockId":       entry.SourceBlockID,
		"sourceCourseId":      entry.SourceCourseID,
		"sourceTitle":         entry.SourceTitle,
		"content":             entry.Content,
		"assets":              entry.Assets,
		"ownerOrganizationId": entry.OwnerOrganizationID,
	}}
}
