// Package compendium wraps the D&D 5e SRD API for looking up reference
// equipment data. The inspect command uses it to show item details next
// to the stored attunement weight when a table is deciding weights.
package compendium

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"

	"github.com/feyloom/attunement-tracker/internal/errors"
)

// ItemData is the slice of SRD equipment data this module cares about
type ItemData struct {
	ID            string
	Name          string
	EquipmentType string
	Category      string
	Weight        float32
	Cost          string
}

// Client defines the interface for compendium lookups
type Client interface {
	// GetItem fetches equipment information for one SRD item key
	GetItem(ctx context.Context, itemKey string) (*ItemData, error)

	// ListWondrousItems returns the SRD wondrous-item category, the
	// bulk of attunable equipment
	ListWondrousItems(ctx context.Context) ([]*ItemData, error)
}

// Config contains configuration options for the compendium client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return nil
}

type client struct {
	dnd5eClient dnd5e.Interface
}

// New creates a new compendium client with the given configuration.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  httpClient,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create D&D 5e API client")
	}

	// Wrap with caching so repeated inspects don't refetch
	cachedClient := dnd5e.NewCachedClient(baseClient, cfg.CacheTTL)

	return &client{
		dnd5eClient: cachedClient,
	}, nil
}

func (c *client) GetItem(_ context.Context, itemKey string) (*ItemData, error) {
	apiKey := toAPIKey(itemKey)

	equipmentItem, err := c.dnd5eClient.GetEquipment(apiKey)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get equipment %s (api: %s)", itemKey, apiKey)
	}

	return convertEquipment(equipmentItem), nil
}

func (c *client) ListWondrousItems(_ context.Context) ([]*ItemData, error) {
	category, err := c.dnd5eClient.GetEquipmentCategory("wondrous-items")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get wondrous-items category")
	}

	items := make([]*ItemData, 0, len(category.Equipment))
	for _, ref := range category.Equipment {
		items = append(items, &ItemData{
			ID:   ref.Key,
			Name: ref.Name,
		})
	}
	return items, nil
}

// convertEquipment converts dnd5e-api equipment to our internal format
func convertEquipment(equipment dnd5e.EquipmentInterface) *ItemData {
	if equipment == nil {
		return nil
	}

	item := &ItemData{
		EquipmentType: equipment.GetType(),
	}

	switch eq := equipment.(type) {
	case *entities.Weapon:
		item.ID = eq.Key
		item.Name = eq.Name
		item.Weight = eq.Weight
		if eq.EquipmentCategory != nil {
			item.Category = eq.EquipmentCategory.Key
		}
		if eq.Cost != nil {
			item.Cost = fmt.Sprintf("%v %s", eq.Cost.Quantity, eq.Cost.Unit)
		}

	case *entities.Armor:
		item.ID = eq.Key
		item.Name = eq.Name
		item.Weight = eq.Weight
		if eq.EquipmentCategory != nil {
			item.Category = eq.EquipmentCategory.Key
		}
		if eq.Cost != nil {
			item.Cost = fmt.Sprintf("%v %s", eq.Cost.Quantity, eq.Cost.Unit)
		}

	case *entities.Equipment:
		item.ID = eq.Key
		item.Name = eq.Name
		item.Weight = eq.Weight
		if eq.EquipmentCategory != nil {
			item.Category = eq.EquipmentCategory.Key
		}
		if eq.Cost != nil {
			item.Cost = fmt.Sprintf("%v %s", eq.Cost.Quantity, eq.Cost.Unit)
		}
	}

	return item
}

// toAPIKey normalizes an item identifier to the SRD API's key format
func toAPIKey(id string) string {
	return strings.ToLower(strings.ReplaceAll(id, "_", "-"))
}
