// Package taggingsvc - Event handlers cho Tagging (OnDataChanged).
// Khi khóa học được tạo/cập nhật, hook tự động gắn tag ngôn ngữ bằng taxonomy
// hệ thống Language.
package taggingsvc

import (
	"context"

	contentmodels "meta_learning/internal/api/content/models"
	"meta_learning/internal/api/events"
	taggingmodels "meta_learning/internal/api/tagging/models"
	"meta_learning/internal/common"
	"meta_learning/internal/global"
	"meta_learning/internal/logger"
)

func init() {
	events.OnDataChanged(handleTaggingDataChange)
}

// handleTaggingDataChange xử lý thay đổi dữ liệu — auto tag ngôn ngữ cho khóa học.
func handleTaggingDataChange(ctx context.Context, e events.DataChangeEvent) {
	if e.CollectionName != global.MongoDB_ColNames.Courses {
		return
	}
	if e.Operation != events.OpInsert && e.Operation != events.OpUpdate && e.Operation != events.OpUpsert {
		return
	}
	course, ok := toCourse(e.Document)
	if !ok {
		return
	}

	objectTagSvc, err := NewObjectTagService()
	if err != nil {
		logger.GetAppLogger().WithError(err).Warn("[Tagging] Không thể tạo ObjectTagService trong hook")
		return
	}
	if err := objectTagSvc.AutoTagCourseLanguage(ctx, course); err != nil {
		logger.GetAppLogger().WithError(err).WithField("courseId", course.ID.Hex()).Warn("[Tagging] Auto tag ngôn ngữ lỗi")
	}
}

// AutoTagCourseLanguage gắn tag ngôn ngữ cho khóa học bằng taxonomy hệ thống Language.
// Code của khóa học được thử trước; code không resolve được (taxonomy không có tag
// khớp) thì fallback về DEFAULT_LANGUAGE. Cả hai đều không có tag thì bỏ qua êm
// (không lỗi, không tag).
func (s *ObjectTagService) AutoTagCourseLanguage(ctx context.Context, course *contentmodels.Course) error {
	taxonomy, err := s.TaxonomyService.GetLanguageTaxonomy(ctx)
	if err != nil {
		if err == common.ErrNotFound {
			return nil
		}
		return err
	}
	if !taxonomy.Enabled || !TaxonomyAppliesToOrg(taxonomy, course.OwnerOrganizationID) {
		return nil
	}

	defaultLanguage := ""
	if global.MongoDB_ServerConfig != nil {
		defaultLanguage = global.MongoDB_ServerConfig.DefaultLanguage
	}

	// Language code là externalId của tag (vd: "en" → tag "English")
	for _, code := range languageTagCandidates(course.Language, defaultLanguage) {
		tag, err := s.TagService.FindByExternalID(ctx, taxonomy.ID, code)
		if err == common.ErrNotFound {
			continue
		}
		if err != nil {
			return err
		}
		_, err = s.TagObject(ctx, taxonomy.ID, taggingmodels.ObjectTypeCourse, course.ID, course.OwnerOrganizationID, []string{tag.Value})
		return err
	}
	return nil
}

// languageTagCandidates trả về các language code cần thử theo thứ tự ưu tiên:
// code của khóa học trước, rồi đến code mặc định. Bỏ code rỗng và trùng.
func languageTagCandidates(courseLanguage, defaultLanguage string) []string {
	var candidates []string
	if courseLanguage != "" {
		candidates = append(candidates, courseLanguage)
	}
	if defaultLanguage != "" && defaultLanguage != courseLanguage {
		candidates = append(candidates, defaultLanguage)
	}
	return candidates
}

func toCourse(doc interface{}) (*contentmodels.Course, bool) {
	if doc == nil {
		return nil, false
	}
	if d, ok := doc.(*contentmodels.Course); ok {
		return d, true
	}
	if d, ok := doc.(contentmodels.Course); ok {
		return &d, true
	}
	return nil, false
}
