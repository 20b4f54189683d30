// Package notifsvc - Event handlers cho Notification (OnDataChanged).
// Khi người dùng ghi danh vào khóa học, hook tạo notification chào mừng
// và enqueue delivery cho các kênh ngoài đang bật.
package notifsvc

import (
	"context"
	"fmt"

	authsvc "meta_learning/internal/api/auth/service"
	contentmodels "meta_learning/internal/api/content/models"
	contentsvc "meta_learning/internal/api/content/service"
	"meta_learning/internal/api/events"
	notifmodels "meta_learning/internal/api/notification/models"
	"meta_learning/internal/global"
	"meta_learning/internal/logger"
)

func init() {
	events.OnDataChanged(handleNotificationDataChange)
}

// handleNotificationDataChange xử lý thay đổi dữ liệu — tạo notification chào mừng
// khi có enrollment mới.
func handleNotificationDataChange(ctx context.Context, e events.DataChangeEvent) {
	if e.CollectionName != global.MongoDB_ColNames.Enrollments {
		return
	}
	if e.Operation != events.OpInsert {
		return
	}
	enrollment, ok := toEnrollment(e.Document)
	if !ok {
		return
	}

	if err := notifyEnrollment(ctx, enrollment); err != nil {
		logger.GetAppLogger().WithError(err).
			WithField("enrollmentId", enrollment.ID.Hex()).
			Warn("[Notification] Tạo notification chào mừng lỗi")
	}
}

// notifyEnrollment tạo notification chào mừng cho học viên vừa ghi danh
// và enqueue delivery email/push theo preference.
func notifyEnrollment(ctx context.Context, enrollment *contentmodels.CourseEnrollment) error {
	courseSvc, err := contentsvc.NewCourseService()
	if err != nil {
		return err
	}
	course, err := courseSvc.FindOneById(ctx, enrollment.CourseID)
	if err != nil {
		return err
	}

	feedSvc, err := NewNotificationFeedService()
	if err != nil {
		return err
	}
	notif, err := feedSvc.InsertOne(ctx, notifmodels.Notification{
		UserID:              enrollment.UserID,
		CourseID:            enrollment.CourseID,
		AppName:             notifmodels.AppEnrollments,
		NotificationType:    "enrolled",
		Content:             fmt.Sprintf("Bạn đã ghi danh vào khóa học %s", course.Name),
		ContentURL:          fmt.Sprintf("/courses/%s", course.ID.Hex()),
		Context:             map[string]interface{}{"courseName": course.Name, "mode": enrollment.Mode},
		OwnerOrganizationID: enrollment.OwnerOrganizationID,
	})
	if err != nil {
		return err
	}

	prefSvc, err := NewNotificationPreferenceService()
	if err != nil {
		return err
	}
	pref, err := prefSvc.GetOrCreate(ctx, enrollment.UserID, enrollment.CourseID, enrollment.OwnerOrganizationID)
	if err != nil {
		return err
	}

	userSvc, err := authsvc.NewUserService()
	if err != nil {
		return err
	}
	user, err := userSvc.FindOneById(ctx, enrollment.UserID)
	if err != nil {
		return err
	}

	deliverySvc, err := NewNotificationDeliveryService()
	if err != nil {
		return err
	}
	return deliverySvc.EnqueueForNotification(ctx, notif, pref.Apps, user)
}

func toEnrollment(doc interface{}) (*contentmodels.CourseEnrollment, bool) {
	if doc == nil {
		return nil, false
	}
	if d, ok := doc.(*contentmodels.CourseEnrollment); ok {
		return d, true
	}
	if d, ok := doc.(contentmodels.CourseEnrollment); ok {
		return &d, true
	}
	return nil, false
}
