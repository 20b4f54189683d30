package notifsvc

import (
	"context"
	"fmt"
	"time"

	basemodels "meta_learning/internal/api/base/models"
	basesvc "meta_learning/internal/api/base/service"
	notifmodels "meta_learning/internal/api/notification/models"
	"meta_learning/internal/common"
	"meta_learning/internal/global"
	"meta_learning/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// defaultRetentionDays áp dụng khi config chưa được load
const defaultRetentionDays = 60

// NotificationFeedService là service quản lý feed thông báo của người dùng
type NotificationFeedService struct {
	*basesvc.BaseServiceMongoImpl[notifmodels.Notification]
}

// NewNotificationFeedService tạo mới NotificationFeedService
func NewNotificationFeedService() (*NotificationFeedService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Notifications)
	if !exist {
		return nil, fmt.Errorf("failed to get notifications collection: %v", common.ErrNotFound)
	}
	return &NotificationFeedService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[notifmodels.Notification](collection),
	}, nil
}

const millisPerDay = 24 * 60 * 60 * 1000

// retentionDays trả về số ngày của cửa sổ retention theo config (mặc định 60)
func retentionDays() int {
	if global.MongoDB_ServerConfig != nil && global.MongoDB_ServerConfig.NotificationRetentionDays > 0 {
		return global.MongoDB_ServerConfig.NotificationRetentionDays
	}
	return defaultRetentionDays
}

// retentionCutoffFrom trả về mốc millis của cửa sổ retention tính từ now
func retentionCutoffFrom(now time.Time, days int) int64 {
	return now.UnixMilli() - int64(days)*millisPerDay
}

// RetentionCutoff trả về mốc thời gian (millis) của cửa sổ retention:
// notification cũ hơn mốc này không xuất hiện trong feed và không được đếm.
func RetentionCutoff() int64 {
	return retentionCutoffFrom(time.Now(), retentionDays())
}

// feedFilter dựng filter feed của một người dùng trong cửa sổ retention.
// appName rỗng nghĩa là mọi app.
func feedFilter(userID primitive.ObjectID, appName string, cutoff int64) bson.M {
	filter := bson.M{
		"userId":    userID,
		"createdAt": bson.M{"$gte": cutoff},
	}
	if appName != "" {
		filter["appName"] = appName
	}
	return filter
}

// GetFeed lấy feed thông báo của người dùng trong cửa sổ retention,
// sắp theo createdAt giảm dần rồi đến _id giảm dần (ổn định khi createdAt trùng).
// appName rỗng nghĩa là mọi app.
func (s *NotificationFeedService) GetFeed(ctx context.Context, userID primitive.ObjectID, appName string, page, limit int64) (*basemodels.PaginateResult[notifmodels.Notification], error) {
	filter := feedFilter(userID, appName, RetentionCutoff())
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// CountUnseen đếm notification chưa thấy của người dùng theo từng app
// (trong cửa sổ retention).
func (s *NotificationFeedService) CountUnseen(ctx context.Context, userID primitive.ObjectID) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, app := range KnownApps() {
		filter := bson.M{
			"userId":    userID,
			"appName":   app,
			"lastSeen":  nil,
			"createdAt": bson.M{"$gte": RetentionCutoff()},
		}
		count, err := s.Collection().CountDocuments(ctx, filter)
		if err != nil {
			return nil, err
		}
		counts[app] = count
	}
	return counts, nil
}

// MarkSeen đánh dấu đã thấy mọi notification chưa thấy của người dùng
// (trong một app nếu appName khác rỗng). Idempotent — notification đã thấy giữ
// nguyên mốc lastSeen cũ. Trả về số notification vừa được đánh dấu.
func (s *NotificationFeedService) MarkSeen(ctx context.Context, userID primitive.ObjectID, appName string) (int64, error) {
	filter := bson.M{
		"userId":    userID,
		"lastSeen":  nil,
		"createdAt": bson.M{"$gte": RetentionCutoff()},
	}
	if appName != "" {
		filter["appName"] = appName
	}
	update := bson.M{"$set": bson.M{
		"lastSeen":  utility.CurrentTimeInMilli(),
		"updatedAt": utility.CurrentTimeInMilli(),
	}}
	count, err := s.UpdateMany(ctx, filter, update, nil)
	if err != nil && err != common.ErrNotFound {
		return 0, err
	}
	return count, nil
}

// markReadTarget dựng filter cho MarkRead. notificationID khác nil thì trả về
// filter theo _id (kèm userId để xác nhận sở hữu) và byID=true — appName bị bỏ qua.
func markReadTarget(userID primitive.ObjectID, notificationID *primitive.ObjectID, appName string, cutoff int64) (bson.M, bool) {
	if notificationID != nil {
		return bson.M{"_id": *notificationID, "userId": userID}, true
	}
	filter := bson.M{
		"userId":    userID,
		"lastRead":  nil,
		"createdAt": bson.M{"$gte": cutoff},
	}
	if appName != "" {
		filter["appName"] = appName
	}
	return filter, false
}

// MarkRead đánh dấu đã đọc. notificationID khác nil thì chỉ notification đó được
// đánh dấu và appName bị bỏ qua — ID tường minh luôn thắng filter theo app.
// Idempotent — notification đã đọc giữ nguyên mốc lastRead cũ.
func (s *NotificationFeedService) MarkRead(ctx context.Context, userID primitive.ObjectID, notificationID *primitive.ObjectID, appName string) (int64, error) {
	now := utility.CurrentTimeInMilli()
	update := bson.M{"$set": bson.M{"lastRead": now, "updatedAt": now}}

	filter, byID := markReadTarget(userID, notificationID, appName, RetentionCutoff())
	if byID {
		// Chỉ đánh dấu notification được chỉ định, xác nhận quyền sở hữu
		notif, err := s.FindOne(ctx, filter, nil)
		if err != nil {
			return 0, err
		}
		if notif.LastRead != nil {
			return 0, nil
		}
		if _, err := s.UpdateOne(ctx, bson.M{"_id": notif.ID}, update, nil); err != nil {
			return 0, err
		}
		return 1, nil
	}

	count, err := s.UpdateMany(ctx, filter, update, nil)
	if err != nil && err != common.ErrNotFound {
		return 0, err
	}
	return count, nil
}
