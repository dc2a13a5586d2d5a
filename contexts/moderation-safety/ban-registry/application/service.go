package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"palette/contexts/moderation-safety/ban-registry/domain/entities"
	domainerrors "palette/contexts/moderation-safety/ban-registry/domain/errors"
	"palette/contexts/moderation-safety/ban-registry/ports"
)

type BanCommand struct {
	UserID      string
	IPAddress   string
	ModeratorID string
	Reason      string
}

type UnbanCommand struct {
	UserID      string
	IPAddress   string
	ModeratorID string
}

// Service owns ban lifecycle and the cascading effect on preset visibility.
// Bans are audit rows: closing one sets unbanned_at, nothing is deleted.
type Service struct {
	Repo    ports.BanRepository
	Presets ports.PresetSuppressor
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func (s Service) Ban(ctx context.Context, cmd BanCommand) (entities.Ban, error) {
	logger := ResolveLogger(s.Logger)
	cmd.UserID = strings.TrimSpace(cmd.UserID)
	cmd.IPAddress = strings.TrimSpace(cmd.IPAddress)
	cmd.ModeratorID = strings.TrimSpace(cmd.ModeratorID)
	cmd.Reason = strings.TrimSpace(cmd.Reason)
	if cmd.UserID == "" && cmd.IPAddress == "" {
		return entities.Ban{}, fmt.Errorf("%w: a user id or ip address is required", domainerrors.ErrInvalidBanInput)
	}
	if cmd.ModeratorID == "" {
		return entities.Ban{}, fmt.Errorf("%w: moderator id is required", domainerrors.ErrInvalidBanInput)
	}
	if len(cmd.Reason) < entities.ReasonMinLength || len(cmd.Reason) > entities.ReasonMaxLength {
		return entities.Ban{}, fmt.Errorf("%w: reason must be %d-%d characters",
			domainerrors.ErrInvalidBanInput, entities.ReasonMinLength, entities.ReasonMaxLength)
	}

	if cmd.UserID != "" {
		if _, found, err := s.Repo.GetActiveBanByUser(ctx, cmd.UserID); err != nil {
			return entities.Ban{}, err
		} else if found {
			return entities.Ban{}, domainerrors.ErrAlreadyBanned
		}
	}
	if cmd.IPAddress != "" {
		if _, found, err := s.Repo.GetActiveBanByIP(ctx, cmd.IPAddress); err != nil {
			return entities.Ban{}, err
		} else if found {
			return entities.Ban{}, domainerrors.ErrAlreadyBanned
		}
	}

	banID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Ban{}, err
	}
	ban := entities.Ban{
		BanID:       banID,
		UserID:      cmd.UserID,
		IPAddress:   cmd.IPAddress,
		ModeratorID: cmd.ModeratorID,
		Reason:      cmd.Reason,
		BannedAt:    s.Clock.Now().UTC(),
	}
	if err := s.Repo.CreateBan(ctx, ban); err != nil {
		return entities.Ban{}, err
	}

	hidden := 0
	if ban.UserID != "" && s.Presets != nil {
		hidden, err = s.Presets.HideByAuthor(ctx, ban.UserID)
		if err != nil {
			return entities.Ban{}, err
		}
	}
	logger.Info("identity banned",
		"event", "ban_created",
		"module", "moderation-safety/ban-registry",
		"layer", "application",
		"ban_id", ban.BanID,
		"user_id", ban.UserID,
		"moderator_id", ban.ModeratorID,
		"presets_hidden", hidden,
	)
	return ban, nil
}

func (s Service) Unban(ctx context.Context, cmd UnbanCommand) (entities.Ban, error) {
	logger := ResolveLogger(s.Logger)
	cmd.UserID = strings.TrimSpace(cmd.UserID)
	cmd.IPAddress = strings.TrimSpace(cmd.IPAddress)
	cmd.ModeratorID = strings.TrimSpace(cmd.ModeratorID)
	if cmd.ModeratorID == "" || (cmd.UserID == "" && cmd.IPAddress == "") {
		return entities.Ban{}, domainerrors.ErrInvalidBanInput
	}

	var ban entities.Ban
	var found bool
	var err error
	if cmd.UserID != "" {
		ban, found, err = s.Repo.GetActiveBanByUser(ctx, cmd.UserID)
	} else {
		ban, found, err = s.Repo.GetActiveBanByIP(ctx, cmd.IPAddress)
	}
	if err != nil {
		return entities.Ban{}, err
	}
	if !found {
		return entities.Ban{}, domainerrors.ErrBanNotFound
	}

	unbannedAt := s.Clock.Now().UTC()
	if err := s.Repo.CloseBan(ctx, ban.BanID, unbannedAt, cmd.ModeratorID); err != nil {
		return entities.Ban{}, err
	}
	ban.UnbannedAt = &unbannedAt
	ban.UnbanModeratorID = cmd.ModeratorID

	restored := 0
	if ban.UserID != "" && s.Presets != nil {
		restored, err = s.Presets.RestoreByAuthor(ctx, ban.UserID)
		if err != nil {
			return entities.Ban{}, err
		}
	}
	logger.Info("identity unbanned",
		"event", "ban_closed",
		"module", "moderation-safety/ban-registry",
		"layer", "application",
		"ban_id", ban.BanID,
		"user_id", ban.UserID,
		"moderator_id", cmd.ModeratorID,
		"presets_restored", restored,
	)
	return ban, nil
}

// IsBanned is the active-ban predicate the authorization boundary consults
// before letting a caller submit, vote, or edit.
func (s Service) IsBanned(ctx context.Context, userID string, ip string) (bool, error) {
	if userID = strings.TrimSpace(userID); userID != "" {
		if _, found, err := s.Repo.GetActiveBanByUser(ctx, userID); err != nil {
			return false, err
		} else if found {
			return true, nil
		}
	}
	if ip = strings.TrimSpace(ip); ip != "" {
		if _, found, err := s.Repo.GetActiveBanByIP(ctx, ip); err != nil {
			return false, err
		} else if found {
			return true, nil
		}
	}
	return false, nil
}

func (s Service) List(ctx context.Context, activeOnly bool) ([]entities.Ban, error) {
	return s.Repo.ListBans(ctx, activeOnly)
}
