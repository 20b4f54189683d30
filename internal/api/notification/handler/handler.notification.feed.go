// Package notifhdl - Handler cho domain Notification: feed, preference.
package notifhdl

import (
	"fmt"

	basehdl "meta_learning/internal/api/base/handler"
	notifdto "meta_learning/internal/api/notification/dto"
	notifmodels "meta_learning/internal/api/notification/models"
	notifsvc "meta_learning/internal/api/notification/service"
	"meta_learning/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationFeedHandler xử lý các request về feed thông báo của người dùng
type NotificationFeedHandler struct {
	*basehdl.BaseHandler[notifmodels.Notification, notifdto.MarkReadInput, notifdto.MarkReadInput]
	FeedService *notifsvc.NotificationFeedService
}

// NewNotificationFeedHandler tạo mới NotificationFeedHandler
func NewNotificationFeedHandler() (*NotificationFeedHandler, error) {
	feedService, err := notifsvc.NewNotificationFeedService()
	if err != nil {
		return nil, fmt.Errorf("failed to create notification feed service: %v", err)
	}
	hdl := &NotificationFeedHandler{
		FeedService: feedService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[notifmodels.Notification, notifdto.MarkReadInput, notifdto.MarkReadInput](feedService.BaseServiceMongoImpl)
	return hdl, nil
}

// parseOptionalNotificationID parse notificationId dạng hex; rỗng trả về nil,
// sai định dạng trả về lỗi validation.
func parseOptionalNotificationID(raw string) (*primitive.ObjectID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			"notificationId không hợp lệ",
			common.StatusBadRequest,
			err,
		)
	}
	return &id, nil
}

// currentUserID lấy user ID từ context (đã được AuthMiddleware set vào Locals)
func currentUserID(c fiber.Ctx) (primitive.ObjectID, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return userID, nil
}

// GetFeed trả về feed thông báo của người dùng đang đăng nhập (phân trang,
// trong cửa sổ retention). Query app lọc theo một app.
func (h *NotificationFeedHandler) GetFeed(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, limit := h.ParsePagination(c)
		appName := c.Query("app", "")

		result, err := h.FeedService.GetFeed(c.Context(), userID, appName, page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// GetUnseenCounts trả về số notification chưa thấy theo từng app
func (h *NotificationFeedHandler) GetUnseenCounts(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		counts, err := h.FeedService.CountUnseen(c.Context(), userID)
		h.HandleResponse(c, counts, err)
		return nil
	})
}

// MarkSeen đánh dấu đã thấy mọi notification chưa thấy (trong một app nếu có appName)
func (h *NotificationFeedHandler) MarkSeen(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input notifdto.MarkSeenInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		count, err := h.FeedService.MarkSeen(c.Context(), userID, input.AppName)
		h.HandleResponse(c, map[string]interface{}{"marked": count}, err)
		return nil
	})
}

// MarkRead đánh dấu đã đọc. notificationId trong body thì chỉ notification đó
// được đánh dấu và appName bị bỏ qua; ngược lại đánh dấu mọi notification chưa đọc
// (trong một app nếu có appName).
func (h *NotificationFeedHandler) MarkRead(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input notifdto.MarkReadInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		notificationID, err := parseOptionalNotificationID(input.NotificationID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		count, err := h.FeedService.MarkRead(c.Context(), userID, notificationID, input.AppName)
		h.HandleResponse(c, map[string]interface{}{"marked": count}, err)
		return nil
	})
}
