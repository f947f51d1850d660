package domain

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/fatih/structs"
	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/internal/model"
	"github.com/fitchallenge/backend/internal/repository"
	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"
)

var colorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type CustomizationDomain interface {
	Get(context.Context, *model.GetCustomizationRequest) (*model.GetCustomizationResponse, error)
	Update(context.Context, *model.UpdateCustomizationRequest) (*model.UpdateCustomizationResponse, error)
}

type customizationDomain struct {
	customizationRepo repository.CustomizationRepository
}

func NewCustomizationDomain(customizationRepo repository.CustomizationRepository) *customizationDomain {
	return &customizationDomain{customizationRepo: customizationRepo}
}

func (d *customizationDomain) Get(
	ctx context.Context, req *model.GetCustomizationRequest,
) (*model.GetCustomizationResponse, error) {
	shop := xcontext.Shop(ctx)
	if shop == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Unknown shop")
	}

	settings, err := d.get(ctx, shop)
	if err != nil {
		return nil, err
	}

	resp := model.GetCustomizationResponse(convertCustomization(settings))
	return &resp, nil
}

func (d *customizationDomain) Update(
	ctx context.Context, req *model.UpdateCustomizationRequest,
) (*model.UpdateCustomizationResponse, error) {
	shop := xcontext.Shop(ctx)
	if shop == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Unknown shop")
	}

	if len(req.Settings) == 0 {
		return nil, errorx.NewField("settings", "Nothing to update")
	}

	settings, err := d.get(ctx, shop)
	if err != nil {
		return nil, err
	}

	maxLabelLength := xcontext.Configs(ctx).Customization.MaxLabelLength

	// Only the fields tagged by structs can be changed.
	values := structs.Map(settings)
	for key, value := range req.Settings {
		if _, ok := values[key]; !ok {
			return nil, errorx.NewField(key, "Unknown setting")
		}

		value = strings.TrimSpace(value)
		if strings.HasSuffix(key, "_color") {
			if !colorRegex.MatchString(value) {
				return nil, errorx.NewField(key, "Color must be in #rgb or #rrggbb format")
			}
		} else if len(value) > maxLabelLength {
			return nil, errorx.NewField(key, "Text must be at most %d characters", maxLabelLength)
		}

		values[key] = value
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "structs",
		Result:  settings,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create decoder: %v", err)
		return nil, errorx.Unknown
	}

	if err := decoder.Decode(values); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode settings: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.customizationRepo.Upsert(ctx, settings); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save settings: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.UpdateCustomizationResponse(convertCustomization(settings))
	return &resp, nil
}

// get returns the stored settings of the shop, or the defaults if the shop
// never customized its forms.
func (d *customizationDomain) get(ctx context.Context, shop string) (*entity.CustomizationSettings, error) {
	settings, err := d.customizationRepo.Get(ctx, shop)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			defaults := entity.DefaultCustomizationSettings(shop)
			defaults.ID = uuid.NewString()
			return &defaults, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get settings: %v", err)
		return nil, errorx.Unknown
	}

	return settings, nil
}
