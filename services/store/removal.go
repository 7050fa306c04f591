package store

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"sprinter_backend/models"
)

// Two-phase removal workflow. Each (client, market) pair moves between
// two states: linked (no deletion mark) and marked for removal. A
// confirm unlinks every marked pair for the client in one pass; a
// cancel returns them all to the linked state. Newly linked pairs
// always start linked.

// SetMarkedForDeletion sets the deletion mark on an existing pair. A
// missing pair is logged and ignored; the watchlist may have changed
// under the user between the selection page and the click.
func (s *Store) SetMarkedForDeletion(clientID int64, isin string, marked bool) error {
	res := s.db.Model(&models.ClientMarket{}).
		Where("client_id = ? AND market_isin = ?", clientID, isin).
		Update("marked_for_deletion", marked)
	if res.Error != nil {
		return fmt.Errorf("failed to set deletion mark on %s for client %d: %w", isin, clientID, res.Error)
	}
	if res.RowsAffected == 0 {
		log.Printf("No watchlist row for client %d and market %s, deletion mark not set", clientID, isin)
	}
	return nil
}

// ToggleRemovalMark flips the deletion mark on an existing pair and
// returns the new state.
func (s *Store) ToggleRemovalMark(clientID int64, isin string) (bool, error) {
	var cm models.ClientMarket
	err := s.db.First(&cm, "client_id = ? AND market_isin = ?", clientID, isin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("watchlist row for client %d and market %s: %w", clientID, isin, ErrNotFound)
		}
		return false, fmt.Errorf("failed to read watchlist row for client %d and market %s: %w", clientID, isin, err)
	}

	marked := !cm.MarkedForDeletion
	res := s.db.Model(&models.ClientMarket{}).
		Where("client_id = ? AND market_isin = ?", clientID, isin).
		Update("marked_for_deletion", marked)
	if res.Error != nil {
		return false, fmt.Errorf("failed to toggle deletion mark on %s for client %d: %w", isin, clientID, res.Error)
	}
	return marked, nil
}

// ConfirmRemovals unlinks every pair the client has marked for removal
// and returns how many rows were deleted. Unmarked pairs are untouched.
func (s *Store) ConfirmRemovals(clientID int64) (int64, error) {
	res := s.db.Where("client_id = ? AND marked_for_deletion = ?", clientID, true).
		Delete(&models.ClientMarket{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to confirm removals for client %d: %w", clientID, res.Error)
	}
	return res.RowsAffected, nil
}

// CancelRemovals clears the deletion mark on every pair the client has
// marked and returns how many were restored. Nothing is deleted.
func (s *Store) CancelRemovals(clientID int64) (int64, error) {
	res := s.db.Model(&models.ClientMarket{}).
		Where("client_id = ? AND marked_for_deletion = ?", clientID, true).
		Update("marked_for_deletion", false)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to cancel removals for client %d: %w", clientID, res.Error)
	}
	return res.RowsAffected, nil
}
