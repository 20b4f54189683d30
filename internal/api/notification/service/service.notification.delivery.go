package notifsvc

import (
	"context"
	"fmt"

	authmodels "meta_learning/internal/api/auth/models"
	basesvc "meta_learning/internal/api/base/service"
	notifmodels "meta_learning/internal/api/notification/models"
	"meta_learning/internal/common"
	"meta_learning/internal/global"
	"meta_learning/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/gomail.v2"
)

// NotificationDeliveryService là service quản lý hàng đợi gửi notification
// ra kênh ngoài (email qua SMTP, push qua FCM)
type NotificationDeliveryService struct {
	*basesvc.BaseServiceMongoImpl[notifmodels.NotificationDelivery]
}

// NewNotificationDeliveryService tạo mới NotificationDeliveryService
func NewNotificationDeliveryService() (*NotificationDeliveryService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.NotificationDeliveries)
	if !exist {
		return nil, fmt.Errorf("failed to get notification_deliveries collection: %v", common.ErrNotFound)
	}
	return &NotificationDeliveryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[notifmodels.NotificationDelivery](collection),
	}, nil
}

// EnqueueForNotification tạo delivery item cho các kênh ngoài đang bật trong
// preference của người nhận. Kênh web không qua hàng đợi.
func (s *NotificationDeliveryService) EnqueueForNotification(ctx context.Context, notif notifmodels.Notification, apps map[string]notifmodels.AppPreference, user authmodels.User) error {
	var items []notifmodels.NotificationDelivery

	if ChannelEnabledFor(apps, notif.AppName, notif.NotificationType, notifmodels.ChannelEmail) && user.Email != "" {
		items = append(items, notifmodels.NotificationDelivery{
			NotificationID:      notif.ID,
			UserID:              notif.UserID,
			Channel:             notifmodels.ChannelEmail,
			Recipient:           user.Email,
			Subject:             notif.Content,
			Body:                notif.Content,
			Status:              notifmodels.DeliveryStatusPending,
			MaxRetries:          3,
			OwnerOrganizationID: notif.OwnerOrganizationID,
		})
	}
	if ChannelEnabledFor(apps, notif.AppName, notif.NotificationType, notifmodels.ChannelPush) && user.FcmToken != "" {
		items = append(items, notifmodels.NotificationDelivery{
			NotificationID:      notif.ID,
			UserID:              notif.UserID,
			Channel:             notifmodels.ChannelPush,
			Recipient:           user.FcmToken,
			Subject:             notif.Content,
			Body:                notif.Content,
			Status:              notifmodels.DeliveryStatusPending,
			MaxRetries:          3,
			OwnerOrganizationID: notif.OwnerOrganizationID,
		})
	}

	if len(items) == 0 {
		return nil
	}
	_, err := s.InsertMany(ctx, items)
	return err
}

// FindPending lấy các delivery item đang chờ gửi, cũ nhất trước
func (s *NotificationDeliveryService) FindPending(ctx context.Context, limit int) ([]notifmodels.NotificationDelivery, error) {
	filter := bson.M{"status": notifmodels.DeliveryStatusPending}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}).SetLimit(int64(limit))
	return s.Find(ctx, filter, opts)
}

// MarkProcessing chuyển một batch delivery item sang trạng thái processing
func (s *NotificationDeliveryService) MarkProcessing(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	filter := bson.M{"_id": bson.M{"$in": ids}}
	update := bson.M{"$set": bson.M{
		"status":    notifmodels.DeliveryStatusProcessing,
		"updatedAt": utility.CurrentTimeInMilli(),
	}}
	_, err := s.UpdateMany(ctx, filter, update, nil)
	if err == common.ErrNotFound {
		return nil
	}
	return err
}

// MarkSent đánh dấu một delivery item đã gửi thành công
func (s *NotificationDeliveryService) MarkSent(ctx context.Context, id primitive.ObjectID) error {
	now := utility.CurrentTimeInMilli()
	update := bson.M{"$set": bson.M{
		"status":    notifmodels.DeliveryStatusSent,
		"sentAt":    now,
		"updatedAt": now,
	}}
	_, err := s.UpdateOne(ctx, bson.M{"_id": id}, update, nil)
	return err
}

// MarkFailed ghi nhận một lần gửi thất bại: tăng retryCount, quay lại pending
// nếu còn lượt thử, ngược lại chuyển sang failed.
func (s *NotificationDeliveryService) MarkFailed(ctx context.Context, item notifmodels.NotificationDelivery, sendErr error) error {
	retryCount := item.RetryCount + 1
	status := notifmodels.DeliveryStatusPending
	if retryCount >= item.MaxRetries {
		status = notifmodels.DeliveryStatusFailed
	}
	update := bson.M{"$set": bson.M{
		"status":     status,
		"retryCount": retryCount,
		"lastError":  sendErr.Error(),
		"updatedAt":  utility.CurrentTimeInMilli(),
	}}
	_, err := s.UpdateOne(ctx, bson.M{"_id": item.ID}, update, nil)
	return err
}

// Send gửi một delivery item qua kênh tương ứng
func (s *NotificationDeliveryService) Send(ctx context.Context, item notifmodels.NotificationDelivery) error {
	switch item.Channel {
	case notifmodels.ChannelEmail:
		return s.sendEmail(item)
	case notifmodels.ChannelPush:
		_, err := utility.SendPushNotification(ctx, item.Recipient, item.Subject, item.Body, map[string]string{
			"notificationId": item.NotificationID.Hex(),
		})
		return err
	default:
		return fmt.Errorf("kênh gửi không hỗ trợ: %s", item.Channel)
	}
}

// sendEmail gửi email qua SMTP (gomail) theo cấu hình server
func (s *NotificationDeliveryService) sendEmail(item notifmodels.NotificationDelivery) error {
	cfg := global.MongoDB_ServerConfig
	if cfg == nil || cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP chưa được cấu hình")
	}

	message := gomail.NewMessage()
	message.SetHeader("From", cfg.SMTPFrom)
	message.SetHeader("To", item.Recipient)
	message.SetHeader("Subject", item.Subject)
	message.SetBody("text/plain", item.Body)

	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return dialer.DialAndSend(message)
}
