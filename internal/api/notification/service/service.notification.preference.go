package notifsvc

import (
	"context"
	"fmt"

	basesvc "meta_learning/internal/api/base/service"
	notifmodels "meta_learning/internal/api/notification/models"
	"meta_learning/internal/common"
	"meta_learning/internal/global"
	"meta_learning/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationPreferenceService là service quản lý preference notification
// của người dùng theo từng khóa học
type NotificationPreferenceService struct {
	*basesvc.BaseServiceMongoImpl[notifmodels.NotificationPreference]
}

// NewNotificationPreferenceService tạo mới NotificationPreferenceService
func NewNotificationPreferenceService() (*NotificationPreferenceService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.NotificationPreferences)
	if !exist {
		return nil, fmt.Errorf("failed to get notification_preferences collection: %v", common.ErrNotFound)
	}
	return &NotificationPreferenceService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[notifmodels.NotificationPreference](collection),
	}, nil
}

// GetOrCreate lấy preference của người dùng trong một khóa học.
// Chưa có document thì tạo mới với giá trị mặc định từ schema; document đã lưu
// được overlay lên schema để app/type mới thêm sau vẫn có đủ giá trị.
func (s *NotificationPreferenceService) GetOrCreate(ctx context.Context, userID, courseID, orgID primitive.ObjectID) (notifmodels.NotificationPreference, error) {
	filter := map[string]interface{}{"userId": userID, "courseId": courseID}
	pref, err := s.FindOne(ctx, filter, nil)
	if err == nil {
		pref.Apps = OverlayPreferenceApps(pref.Apps)
		return pref, nil
	}
	if err != common.ErrNotFound {
		return notifmodels.NotificationPreference{}, err
	}

	pref = notifmodels.NotificationPreference{
		UserID:              userID,
		CourseID:            courseID,
		Apps:                DefaultPreferenceApps(),
		OwnerOrganizationID: orgID,
	}
	return s.InsertOne(ctx, pref)
}

// UpdateChannelValue đổi giá trị một ô (app, type, kênh) trong preference.
// Ô non-editable theo schema bị từ chối; app/type/kênh không có trong schema cũng bị từ chối.
func (s *NotificationPreferenceService) UpdateChannelValue(ctx context.Context, userID, courseID, orgID primitive.ObjectID, app, notificationType, channel string, value bool) (notifmodels.NotificationPreference, error) {
	var zero notifmodels.NotificationPreference

	if !IsChannelEditable(app, notificationType, channel) {
		return zero, common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Ô preference (%s, %s, %s) không tồn tại hoặc không cho phép chỉnh sửa", app, notificationType, channel),
			common.StatusBadRequest,
			nil,
		)
	}

	// Đảm bảo document tồn tại trước khi set nested path
	if _, err := s.GetOrCreate(ctx, userID, courseID, orgID); err != nil {
		return zero, err
	}

	filter := bson.M{"userId": userID, "courseId": courseID}
	update := bson.M{"$set": bson.M{
		fmt.Sprintf("apps.%s.types.%s.%s", app, notificationType, channel): value,
		"updatedAt": utility.CurrentTimeInMilli(),
	}}
	pref, err := s.UpdateOne(ctx, filter, update, nil)
	if err != nil {
		return zero, err
	}
	pref.Apps = OverlayPreferenceApps(pref.Apps)
	return pref, nil
}

// ToggleApp bật/tắt toàn bộ notification của một app trong một khóa học.
// Thao tác là một lệnh $set duy nhất — không đọc-rồi-ghi từng ô.
func (s *NotificationPreferenceService) ToggleApp(ctx context.Context, userID, courseID, orgID primitive.ObjectID, app string, enabled bool) (notifmodels.NotificationPreference, error) {
	var zero notifmodels.NotificationPreference

	if !HasApp(app) {
		return zero, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("App notification không tồn tại: %s", app),
			common.StatusBadRequest,
			nil,
		)
	}

	if _, err := s.GetOrCreate(ctx, userID, courseID, orgID); err != nil {
		return zero, err
	}

	filter := bson.M{"userId": userID, "courseId": courseID}
	update := bson.M{"$set": bson.M{
		fmt.Sprintf("apps.%s.enabled", app): enabled,
		"updatedAt":                         utility.CurrentTimeInMilli(),
	}}
	pref, err := s.UpdateOne(ctx, filter, update, nil)
	if err != nil {
		return zero, err
	}
	pref.Apps = OverlayPreferenceApps(pref.Apps)
	return pref, nil
}
