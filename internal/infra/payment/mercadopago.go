package payment

import (
	"context"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/pkg/errors"

	"github.com/BruksfildServices01/escape-booking/internal/models"
)

const currency = "EUR"

// MercadoPago creates checkout preferences for orders.
type MercadoPago struct {
	client     preference.Client
	publicBase string
}

func NewMercadoPago(accessToken, publicBase string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, errors.Wrap(err, "mercadopago config")
	}
	return &MercadoPago{
		client:     preference.NewClient(cfg),
		publicBase: publicBase,
	}, nil
}

// PreferenceRequest maps an order to a checkout preference. Items carry
// their gross price, so coupons are already applied.
func PreferenceRequest(o *models.Order, publicBase string) preference.Request {
	items := make([]preference.ItemRequest, 0, len(o.Items))
	for _, it := range o.Items {
		if !it.GrossPrice.IsPositive() {
			continue
		}
		items = append(items, preference.ItemRequest{
			ID:         strconv.FormatUint(uint64(it.ID), 10),
			Title:      it.Reference,
			Quantity:   1,
			UnitPrice:  it.GrossPrice.InexactFloat64(),
			CurrencyID: currency,
		})
	}

	ref := strconv.Itoa(o.OrderNumber)
	return preference.Request{
		Items:             items,
		ExternalReference: ref,
		BackURLs: &preference.BackURLsRequest{
			Success: publicBase + "/orders/" + ref + "/paid",
			Failure: publicBase + "/orders/" + ref + "/failed",
			Pending: publicBase + "/orders/" + ref + "/pending",
		},
	}
}

func (m *MercadoPago) CreateLink(ctx context.Context, o *models.Order) (string, error) {
	if !o.GrossTotal.IsPositive() {
		return "", nil
	}

	res, err := m.client.Create(ctx, PreferenceRequest(o, m.publicBase))
	if err != nil {
		return "", errors.Wrap(err, "create preference")
	}
	return res.InitPoint, nil
}
