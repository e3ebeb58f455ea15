package screens

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"

	"fleet_desk/internal/apiclient"
)

const packageLoadError = "Failed to load vehicle details."

// Row is one label/value line of a detail screen.
type Row struct {
	Label string
	Value string
}

type PackageDetail struct {
	env Env

	Booking *PackageBooking
	Loading bool
	Err     string
}

func NewPackageDetail(env Env) *PackageDetail {
	return &PackageDetail{env: env}
}

// Load fetches the booking. On failure Booking is nil and Err holds the
// inline message.
func (p *PackageDetail) Load(ctx context.Context, id string) error {
	p.Loading = true
	defer func() { p.Loading = false }()
	p.Booking, p.Err = nil, ""

	var env apiclient.Envelope[*PackageBooking]
	err := p.env.API.Get(ctx, "/api/packageBooking/"+url.PathEscape(id), &env)
	if err != nil {
		logrus.WithError(err).WithField("packageBookingId", id).Error("Failed to fetch package booking")
		p.Err = packageLoadError
		return err
	}
	if env.Data == nil {
		p.Err = packageLoadError
		return nil
	}
	p.Booking = env.Data
	return nil
}

// Rows lists the booking in display order, or nil when nothing is loaded.
func (p *PackageDetail) Rows() []Row {
	b := p.Booking
	if b == nil {
		return nil
	}
	return []Row{
		{"Vehicle Number", b.Vehicle},
		{"Other Vehicle Number", b.OtherVehicle},
		{"Customer Name", b.CustomerName},
		{"Mobile Number", b.MobileNumber},
		{"Alternate Number/ WhatsApp Number", b.AlternateNumber},
		{"Km Starting", formatAmount(b.KmStarting)},
		{"Per Km Rate", formatAmount(b.PerKmRateInINR)},
		{"Advanced Amount", formatAmount(b.AdvanceAmountInINR)},
		{"Remaining Amount", formatAmount(b.RemainingAmountInINR)},
		{"Departure Place", b.DeparturePlace},
		{"Destination Place", b.DestinationPlace},
		{"Departure Date", FormatDate(b.DepartureDate)},
		{"Departure Time", TimestampToTime(b.DepartureTime)},
		{"Return Date", FormatDate(b.ReturnDate)},
		{"Return Time", TimestampToTime(b.ReturnTime)},
		{"Toll", formatAmount(b.TollInINR)},
		{"Other State Tax", formatAmount(b.OtherStateTaxInINR)},
		{"Instructions", b.Instructions},
		{"Add Note", b.Note},
	}
}
