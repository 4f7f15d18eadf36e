package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tanda-tracker-go/internal/models"
)

// Settings keys. Each setting is one JSON blob.
const (
	settingPartners     = "partners"
	settingModelHistory = "model_history"
)

var defaultPartnerLabels = models.PartnerLabels{A: "PARTNER A", B: "PARTNER B"}

// GetPartnerLabels returns the stored display names, falling back to the
// defaults when nothing was saved yet.
func (s *Service) GetPartnerLabels(ctx context.Context) (models.PartnerLabels, error) {
	labels := defaultPartnerLabels
	found, err := s.getSetting(ctx, settingPartners, &labels)
	if err != nil {
		return models.PartnerLabels{}, err
	}
	if !found {
		return defaultPartnerLabels, nil
	}
	return labels, nil
}

// UpdatePartnerLabels stores the display names, uppercased. Blank names fall
// back to the defaults so a partner slot never loses its label.
func (s *Service) UpdatePartnerLabels(ctx context.Context, labels models.PartnerLabels) error {
	labels.A = strings.ToUpper(strings.TrimSpace(labels.A))
	labels.B = strings.ToUpper(strings.TrimSpace(labels.B))
	if labels.A == "" {
		labels.A = defaultPartnerLabels.A
	}
	if labels.B == "" {
		labels.B = defaultPartnerLabels.B
	}

	if err := s.putSetting(ctx, settingPartners, labels); err != nil {
		return err
	}

	zap.L().Info("Partner labels updated", zap.String("a", labels.A), zap.String("b", labels.B))
	return nil
}

// GetModelHistory returns the last-seen specification per model name. An
// empty map when nothing was recorded yet.
func (s *Service) GetModelHistory(ctx context.Context) (map[string]models.ModelSpec, error) {
	history := map[string]models.ModelSpec{}
	if _, err := s.getSetting(ctx, settingModelHistory, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// recordModelSpec upserts the unit's model into the history blob inside the
// caller's transaction, so a save and its pre-fill data land together. The
// model name is uppercased as the history key.
func recordModelSpec(ctx context.Context, tx *sql.Tx, unit models.Unit) error {
	model := strings.ToUpper(strings.TrimSpace(unit.Model))
	if model == "" {
		return nil
	}

	history := map[string]models.ModelSpec{}
	var raw string
	err := tx.QueryRowContext(ctx, queryGetSetting, settingModelHistory).Scan(&raw)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to get model history: %w", err)
	}
	if err == nil {
		if err := json.Unmarshal([]byte(raw), &history); err != nil {
			return fmt.Errorf("failed to decode model history: %w", err)
		}
	}

	history[model] = models.ModelSpec{
		Storage: unit.Storage,
		Memory:  unit.Memory,
		CostUSD: unit.CostUSD,
	}

	encoded, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode model history: %w", err)
	}
	if _, err := tx.ExecContext(ctx, queryUpsertSetting, settingModelHistory, string(encoded)); err != nil {
		return fmt.Errorf("failed to store model history: %w", err)
	}
	return nil
}

func (s *Service) getSetting(ctx context.Context, key string, dest any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, queryGetSetting, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to get setting %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("failed to decode setting %q: %w", key, err)
	}
	return true, nil
}

func (s *Service) putSetting(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %q: %w", key, err)
	}
	if _, err := s.db.ExecContext(ctx, queryUpsertSetting, key, string(encoded)); err != nil {
		return fmt.Errorf("failed to store setting %q: %w", key, err)
	}
	return nil
}
