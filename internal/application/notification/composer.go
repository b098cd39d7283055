package notification

import (
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	appfulfillment "github.com/tailorbase/backend/internal/application/fulfillment"
	"github.com/tailorbase/backend/internal/domain/fulfillment"
	"github.com/tailorbase/backend/internal/domain/notification"
	"github.com/tailorbase/backend/internal/infrastructure/telemetry"
)

// estimatedDeliveryOffset is the promise quoted in customer mails, counted
// from the order date.
const estimatedDeliveryOffset = 7 * 24 * time.Hour

// Composer turns fulfillment transitions into customer emails. It implements
// the transition engine's Notifier port: resolve the template for the
// (track, tag) combination, fill the placeholders from the order context
// snapshot, and hand the rendered body to the sender. A combination with no
// template resolves to a silent no-op.
type Composer struct {
	sender      notification.Sender
	renderer    notification.TemplateRenderer
	fromAddress string
	formBaseURL string
	logger      *zap.Logger
}

// NewComposer creates a new Composer. formBaseURL is the public base URL of
// the fit-sample feedback form, embedded as a deep link in the fit-sample
// delivery mail.
func NewComposer(sender notification.Sender, renderer notification.TemplateRenderer, fromAddress, formBaseURL string, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{
		sender:      sender,
		renderer:    renderer,
		fromAddress: fromAddress,
		formBaseURL: formBaseURL,
		logger:      logger,
	}
}

// templateData is the placeholder set shared by every mail template
type templateData struct {
	CustomerName      string
	OrderNumber       string
	OrderDate         string
	EstimatedDelivery string
	ShippingName      string
	PlotNumber        string
	PinCode           string
	Country           string
	State             string
	PhoneNumber       string
	TrackingNumber    string
	FeedbackFormURL   string
	CartSummary       template.HTML
}

// cartLineData fills the per-item snippet of the order placement mail
type cartLineData struct {
	TeeType    string
	PocketType string
	SleeveType string
	Color      string
	Quantity   int
	Image      string
}

// OrderPlaced sends the one-time order placement summary, including one
// rendered cart snippet per item in the order.
func (c *Composer) OrderPlaced(ctx context.Context, octx fulfillment.OrderContext) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "notification", "order_placed",
		telemetry.WithAttribute("order_number", octx.OrderNumber),
	)
	defer span.End()

	data := c.placeholderData(octx, appfulfillment.NotificationExtra{})

	var cart strings.Builder
	for _, item := range octx.CartLines {
		snippet, err := c.renderer.Render(notification.TemplateCartLine, cartLineData{
			TeeType:    item.TeeType,
			PocketType: item.PocketType,
			SleeveType: item.SleeveType,
			Color:      item.Color,
			Quantity:   item.QuantityCount,
			Image:      item.Image,
		})
		if err != nil {
			telemetry.RecordError(span, err)
			return fmt.Errorf("render cart line: %w", err)
		}
		cart.WriteString(snippet)
	}
	// Snippets are rendered HTML already; escaping them again would mangle
	// the markup
	data.CartSummary = template.HTML(cart.String())

	body, err := c.renderer.Render(notification.TemplateOrderPlaced, data)
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("render order placed mail: %w", err)
	}

	subject := c.subject(octx.OrderNumber, "Order Placed")
	if err := c.sender.Send(ctx, c.fromAddress, octx.UserEmail, subject, body); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	return nil
}

// StatusChanged sends the notification for a lifecycle transition. Returning
// nil on an unmapped (track, tag) combination is the contract: those
// transitions are deliberately mail-free.
func (c *Composer) StatusChanged(ctx context.Context, track fulfillment.Track, tag fulfillment.UpstreamTag, octx fulfillment.OrderContext, extra appfulfillment.NotificationExtra) error {
	ref, ok := notification.ResolveTemplate(track, tag)
	if !ok {
		c.logger.Debug("No mail template for transition",
			zap.String("track", track.String()),
			zap.String("upstream_tag", tag.String()),
		)
		return nil
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "notification", "status_changed",
		telemetry.WithAttribute("template", ref.Name),
		telemetry.WithAttribute("order_number", octx.OrderNumber),
	)
	defer span.End()

	data := c.placeholderData(octx, extra)
	if track == fulfillment.TrackFitSample && tag == fulfillment.TagDelivered {
		data.FeedbackFormURL = c.feedbackFormURL(extra)
	}

	body, err := c.renderer.Render(ref.Name, data)
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("render %s mail: %w", ref.Name, err)
	}

	subject := c.subject(octx.OrderNumber, ref.SubjectSuffix)
	if err := c.sender.Send(ctx, c.fromAddress, octx.UserEmail, subject, body); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	return nil
}

func (c *Composer) subject(orderNumber, suffix string) string {
	return "Order " + orderNumber + " - " + suffix
}

func (c *Composer) placeholderData(octx fulfillment.OrderContext, extra appfulfillment.NotificationExtra) templateData {
	tracking := ""
	if extra.TrackingNumber != nil {
		tracking = *extra.TrackingNumber
	}
	return templateData{
		CustomerName:      octx.UserName,
		OrderNumber:       octx.OrderNumber,
		OrderDate:         octx.OrderDate.Format("02 Jan 2006"),
		EstimatedDelivery: octx.OrderDate.Add(estimatedDeliveryOffset).Format("02 Jan 2006"),
		ShippingName:      octx.Shipping.CustomerName,
		PlotNumber:        octx.Shipping.PlotNumber,
		PinCode:           octx.Shipping.PinCode,
		Country:           octx.Shipping.Country,
		State:             octx.Shipping.State,
		PhoneNumber:       octx.Shipping.PhoneNumber,
		TrackingNumber:    tracking,
	}
}

// feedbackFormURL builds the deep link a customer follows to submit
// measurement feedback for a delivered fit sample.
func (c *Composer) feedbackFormURL(extra appfulfillment.NotificationExtra) string {
	base := strings.TrimRight(c.formBaseURL, "/")
	query := url.Values{}
	query.Set("customerId", extra.CustomerID)
	query.Set("sizeName", extra.SizeName)
	query.Set("orderId", extra.OrderID)
	return base + "/feedback?" + query.Encode()
}
