// Package clipboardhdl - Handler cho domain Clipboard: copy/paste nội dung giữa các khóa học.
package clipboardhdl

import (
	"fmt"

	basehdl "meta_learning/internal/api/base/handler"
	clipboarddto "meta_learning/internal/api/clipboard/dto"
	clipboardmodels "meta_learning/internal/api/clipboard/models"
	clipboardsvc "meta_learning/internal/api/clipboard/service"
	"meta_learning/internal/common"
	"meta_learning/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClipboardHandler xử lý các request copy/paste của người dùng
type ClipboardHandler struct {
	*basehdl.BaseHandler[clipboardmodels.ClipboardEntry, clipboarddto.ClipboardCopyInput, clipboarddto.ClipboardPasteInput]
	ClipboardService *clipboardsvc.ClipboardService
}

// NewClipboardHandler tạo mới ClipboardHandler
func NewClipboardHandler() (*ClipboardHandler, error) {
	clipboardService, err := clipboardsvc.NewClipboardService()
	if err != nil {
		return nil, fmt.Errorf("failed to create clipboard service: %v", err)
	}
	hdl := &ClipboardHandler{
		ClipboardService: clipboardService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[clipboardmodels.ClipboardEntry, clipboarddto.ClipboardCopyInput, clipboarddto.ClipboardPasteInput](clipboardService.BaseServiceMongoImpl)
	return hdl, nil
}

// currentUserID lấy user ID từ context (đã được AuthMiddleware set vào Locals)
func (h *ClipboardHandler) currentUserID(c fiber.Ctx) (primitive.ObjectID, error) {
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

// GetEntry trả về clipboard entry hiện tại của người dùng đang đăng nhập
func (h *ClipboardHandler) GetEntry(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		entry, err := h.ClipboardService.GetEntry(c.Context(), userID)
		h.HandleResponse(c, entry, err)
		return nil
	})
}

// Copy copy một block (kèm toàn bộ subtree) vào clipboard của người dùng
func (h *ClipboardHandler) Copy(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input clipboarddto.ClipboardCopyInput
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

		blockID, err := primitive.ObjectIDFromHex(input.BlockID)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"blockId không hợp lệ",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		// Quyền copy xét theo tổ chức sở hữu block nguồn
		block, err := h.ClipboardService.CourseBlockService.FindOneById(c.Context(), blockID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateUserHasAccessToOrg(c, block.OwnerOrganizationID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		entry, err := h.ClipboardService.Copy(c.Context(), userID, blockID)
		h.HandleResponse(c, entry, err)
		return nil
	})
}

// Paste dựng lại nội dung trong clipboard tại vị trí đích và copy asset kèm theo
func (h *ClipboardHandler) Paste(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input clipboarddto.ClipboardPasteInput
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

		destCourseID := utility.String2ObjectID(input.DestCourseID)
		var destParentID *primitive.ObjectID
		if input.DestParentID != "" {
			parentID := utility.String2ObjectID(input.DestParentID)
			destParentID = &parentID
		}

		result, err := h.ClipboardService.Paste(c.Context(), userID, destCourseID, destParentID)
		h.HandleResponse(c, result, err)
		return nil
	})
}
