package worker

import (
	"context"
	"time"

	notifsvc "meta_learning/internal/api/notification/service"
	"meta_learning/internal/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationDeliveryWorker worker gửi notification ra kênh ngoài (email/push):
// đọc các delivery item pending, chuyển sang processing, gửi từng item rồi đánh dấu
// sent hoặc failed (còn lượt retry thì quay lại pending).
// Chạy định kỳ (mặc định 30 giây), mỗi lần xử lý tối đa batchSize bản ghi.
type NotificationDeliveryWorker struct {
	deliveryService *notifsvc.NotificationDeliveryService
	interval        time.Duration // Khoảng thời gian giữa các lần chạy
	batchSize       int           // Số bản ghi tối đa mỗi lần (vd: 50)
}

// NewNotificationDeliveryWorker tạo mới NotificationDeliveryWorker.
// Tham số:
//   - interval: Khoảng thời gian giữa các lần chạy (mặc định: 30 giây)
//   - batchSize: Số bản ghi tối đa mỗi lần (mặc định: 50)
func NewNotificationDeliveryWorker(interval time.Duration, batchSize int) (*NotificationDeliveryWorker, error) {
	deliveryService, err := notifsvc.NewNotificationDeliveryService()
	if err != nil {
		return nil, err
	}
	if interval < time.Second {
		interval = 30 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	return &NotificationDeliveryWorker{
		deliveryService: deliveryService,
		interval:        interval,
		batchSize:       batchSize,
	}, nil
}

// Start chạy worker trong vòng lặp: mỗi interval đọc batch pending, gửi từng item,
// đánh dấu sent/failed theo kết quả.
func (w *NotificationDeliveryWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval":  w.interval.String(),
		"batchSize": w.batchSize,
	}).Info("📨 [NOTIFICATION_DELIVERY] Starting Notification Delivery Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("📨 [NOTIFICATION_DELIVERY] Notification Delivery Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("📨 [NOTIFICATION_DELIVERY] Panic khi gửi notification, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				batchCtx := ctx
				items, err := w.deliveryService.FindPending(batchCtx, w.batchSize)
				if err != nil {
					log.WithError(err).Error("📨 [NOTIFICATION_DELIVERY] Lỗi lấy danh sách delivery pending")
					return
				}
				if len(items) == 0 {
					return
				}

				ids := make([]primitive.ObjectID, 0, len(items))
				for _, item := range items {
					ids = append(ids, item.ID)
				}
				if err := w.deliveryService.MarkProcessing(batchCtx, ids); err != nil {
					log.WithError(err).Error("📨 [NOTIFICATION_DELIVERY] Lỗi đánh dấu processing")
					return
				}

				sent := 0
				failed := 0
				for _, item := range items {
					if err := w.deliveryService.Send(batchCtx, item); err != nil {
						failed++
						log.WithError(err).WithFields(map[string]interface{}{
							"deliveryId": item.ID.Hex(),
							"channel":    item.Channel,
							"retryCount": item.RetryCount,
						}).Warn("📨 [NOTIFICATION_DELIVERY] Gửi thất bại")
						if err := w.deliveryService.MarkFailed(batchCtx, item, err); err != nil {
							log.WithError(err).WithField("deliveryId", item.ID.Hex()).Warn("📨 [NOTIFICATION_DELIVERY] MarkFailed thất bại")
						}
						continue
					}
					if err := w.deliveryService.MarkSent(batchCtx, item.ID); err != nil {
						log.WithError(err).WithField("deliveryId", item.ID.Hex()).Warn("📨 [NOTIFICATION_DELIVERY] MarkSent thất bại")
						continue
					}
					sent++
				}

				log.WithFields(map[string]interface{}{
					"sent":   sent,
					"failed": failed,
					"total":  len(items),
				}).Info("📨 [NOTIFICATION_DELIVERY] Đã xử lý batch delivery")
			}()
		}
	}
}
