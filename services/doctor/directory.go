package doctor

import (
	"context"

	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

// ListPublic returns the patient-facing directory. The unfiltered list is served
// from the cache when possible; cache failures fall through to the store.
func (s *DefaultDoctorService) ListPublic(ctx context.Context, filter models.DoctorFilter) ([]models.DoctorPublicView, error) {
	logger := utils.GetLogger()
	cacheable := filter == (models.DoctorFilter{}) && s.Cache != nil

	var generation int64
	if cacheable {
		cached, gen, ok, err := s.Cache.Get(ctx)
		switch {
		case err != nil:
			// A fill needs the generation it was read under.
			logger.Warn("Directory cache read failed", zap.Error(err))
			cacheable = false
		case ok:
			return cached, nil
		}
		generation = gen
	}

	doctors, err := s.Repo.List(ctx, filter)
	if err != nil {
		logger.Error("ListPublic: failed to list doctors", zap.Error(err))
		return nil, utils.NewInternalError("failed to list doctors", err)
	}
	views := make([]models.DoctorPublicView, 0, len(doctors))
	for _, d := range doctors {
		views = append(views, d.PublicView())
	}

	if cacheable {
		if err := s.Cache.Set(ctx, generation, views); err != nil {
			logger.Warn("Directory cache write failed", zap.Error(err))
		}
	}
	return views, nil
}

// ListAll returns full doctor records for admins. Password hashes never serialize.
func (s *DefaultDoctorService) ListAll(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := s.Repo.List(ctx, models.DoctorFilter{})
	if err != nil {
		utils.GetLogger().Error("ListAll: failed to list doctors", zap.Error(err))
		return nil, utils.NewInternalError("failed to list doctors", err)
	}
	return doctors, nil
}

// invalidate drops the cached directory after any doctor mutation.
func (s *DefaultDoctorService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		utils.GetLogger().Warn("Directory cache invalidation failed", zap.Error(err))
	}
}
