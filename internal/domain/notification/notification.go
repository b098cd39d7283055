// Package notification contains the customer-notification bounded context.
//
// The ports defined here (Sender, TemplateRenderer) are implemented in the
// infrastructure layer; the template tables map a (track, upstream tag)
// combination to a mail template. A combination absent from both tables is
// an intentional no-notification transition.
package notification

import (
	"context"

	"github.com/tailorbase/backend/internal/domain/fulfillment"
)

// Sender delivers a rendered notification to a customer
type Sender interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// TemplateRenderer fills a named template with placeholder data
type TemplateRenderer interface {
	Render(name string, data any) (string, error)
}

// TemplateRef identifies a mail template and the suffix appended to the
// "Order <number> - " subject line.
type TemplateRef struct {
	Name          string
	SubjectSuffix string
}

// Template names resolved by the renderer
const (
	TemplateOrderPlaced = "order_placed"
	TemplateCartLine    = "cart_line"

	TemplateFitSampleFinishProduction = "fit_sample_finish_production"
	TemplateFitSamplePacked           = "fit_sample_packed"
	TemplateFitSampleDispatched       = "fit_sample_dispatched"
	TemplateFitSampleDelivered        = "fit_sample_delivered"

	TemplateOrderFinishProduction = "order_finish_production"
	TemplateOrderPacked           = "order_packed"
	TemplateOrderDispatched       = "order_dispatched"
	TemplateOrderCompleted        = "order_completed"
)

// fitSampleTemplates maps upstream tags to templates on the fit-sample track
var fitSampleTemplates = map[fulfillment.UpstreamTag]TemplateRef{
	fulfillment.TagFinishProduction: {TemplateFitSampleFinishProduction, "Fit Sample Production Finished"},
	fulfillment.TagMarkAsPacked:     {TemplateFitSamplePacked, "Fit Sample Packed"},
	fulfillment.TagDispatched:       {TemplateFitSampleDispatched, "Fit Sample Dispatched"},
	fulfillment.TagDelivered:        {TemplateFitSampleDelivered, "Fit Sample Delivered"},
}

// itemOrderTemplates maps upstream tags to templates on the original-order track
var itemOrderTemplates = map[fulfillment.UpstreamTag]TemplateRef{
	fulfillment.TagFinishProduction: {TemplateOrderFinishProduction, "Production Finished"},
	fulfillment.TagMarkAsPacked:     {TemplateOrderPacked, "Order Packed"},
	fulfillment.TagDispatched:       {TemplateOrderDispatched, "Order Dispatched"},
	fulfillment.TagDelivered:        {TemplateOrderCompleted, "Order Completed"},
}

// ResolveTemplate looks up the template for a (track, tag) combination. The
// second return value is false when the transition sends no notification;
// callers treat that as a silent no-op.
func ResolveTemplate(track fulfillment.Track, tag fulfillment.UpstreamTag) (TemplateRef, bool) {
	var table map[fulfillment.UpstreamTag]TemplateRef
	switch track {
	case fulfillment.TrackFitSample:
		table = fitSampleTemplates
	case fulfillment.TrackOriginalOrder:
		table = itemOrderTemplates
	default:
		return TemplateRef{}, false
	}
	ref, ok := table[tag]
	return ref, ok
}
