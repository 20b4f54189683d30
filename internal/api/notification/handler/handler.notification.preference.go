package notifhdl

import (
	"fmt"

	basehdl "meta_learning/internal/api/base/handler"
	contentsvc "meta_learning/internal/api/content/service"
	notifdto "meta_learning/internal/api/notification/dto"
	notifmodels "meta_learning/internal/api/notification/models"
	notifsvc "meta_learning/internal/api/notification/service"
	"meta_learning/internal/common"
	"meta_learning/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationPreferenceHandler xử lý các request về preference notification
// theo từng khóa học
type NotificationPreferenceHandler struct {
	*basehdl.BaseHandler[notifmodels.NotificationPreference, notifdto.PreferenceChannelUpdateInput, notifdto.PreferenceChannelUpdateInput]
	PreferenceService *notifsvc.NotificationPreferenceService
	CourseService     *contentsvc.CourseService
}

// NewNotificationPreferenceHandler tạo mới NotificationPreferenceHandler
func NewNotificationPreferenceHandler() (*NotificationPreferenceHandler, error) {
	preferenceService, err := notifsvc.NewNotificationPreferenceService()
	if err != nil {
		return nil, fmt.Errorf("failed to create notification preference service: %v", err)
	}
	courseService, err := contentsvc.NewCourseService()
	if err != nil {
		return nil, fmt.Errorf("failed to create course service: %v", err)
	}
	hdl := &NotificationPreferenceHandler{
		PreferenceService: preferenceService,
		CourseService:     courseService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[notifmodels.NotificationPreference, notifdto.PreferenceChannelUpdateInput, notifdto.PreferenceChannelUpdateInput](preferenceService.BaseServiceMongoImpl)
	return hdl, nil
}

// resolveCourseContext lấy userID từ token và orgID từ khóa học trong params
func (h *NotificationPreferenceHandler) resolveCourseContext(c fiber.Ctx) (userID, courseID, orgID primitive.ObjectID, err error) {
	userID, err = currentUserID(c)
	if err != nil {
		return
	}

	var params notifdto.PreferenceCourseParams
	if err = h.ParseRequestParams(c, &params); err != nil {
		return
	}
	courseID = utility.String2ObjectID(params.CourseID)

	// Org sở hữu preference là org sở hữu khóa học, không lấy từ client
	course, err := h.CourseService.FindOneById(c.Context(), courseID)
	if err != nil {
		return
	}
	orgID = course.OwnerOrganizationID
	return
}

// GetForCourse trả về preference của người dùng trong một khóa học.
// Chưa có document thì tạo mới với giá trị mặc định từ schema.
func (h *NotificationPreferenceHandler) GetForCourse(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, courseID, orgID, err := h.resolveCourseContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		pref, err := h.PreferenceService.GetOrCreate(c.Context(), userID, courseID, orgID)
		h.HandleResponse(c, pref, err)
		return nil
	})
}

// UpdateChannel đổi giá trị một ô (app, loại notification, kênh) trong preference.
// Ô non-editable theo schema bị từ chối.
func (h *NotificationPreferenceHandler) UpdateChannel(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, courseID, orgID, err := h.resolveCourseContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input notifdto.PreferenceChannelUpdateInput
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

		pref, err := h.PreferenceService.UpdateChannelValue(c.Context(), userID, courseID, orgID, input.App, input.NotificationType, input.Channel, input.Value)
		h.HandleResponse(c, pref, err)
		return nil
	})
}

// ToggleApp bật/tắt toàn bộ notification của một app trong một khóa học
func (h *NotificationPreferenceHandler) ToggleApp(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, courseID, orgID, err := h.resolveCourseContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input notifdto.PreferenceAppToggleInput
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

		pref, err := h.PreferenceService.ToggleApp(c.Context(), userID, courseID, orgID, input.App, input.Enabled)
		h.HandleResponse(c, pref, err)
		return nil
	})
}
