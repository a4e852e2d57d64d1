// Package feed decodes GTFS-RT vehicle position feeds into VehicleLocation
// records. The decoder is written against the wire format directly so that
// schema drift upstream can never break extraction of the fields this
// application needs: unknown fields are skipped, malformed sub-messages are
// abandoned, and the worst outcome for any input is an empty result.
package feed

import (
	"bytes"
	"compress/gzip"
	"io"
	"math"

	"github.com/coastaltransit/busboard/wire"
)

// GTFS-RT field numbers consumed by this application. Everything else is
// routed through wire.Reader.SkipField.
const (
	fieldFeedEntity = 2

	fieldEntityID      = 1
	fieldEntityVehicle = 4

	fieldVehicleTrip       = 1
	fieldVehiclePosition   = 2
	fieldVehicleTimestamp  = 5
	fieldVehicleDescriptor = 8

	fieldTripID    = 1
	fieldTripRoute = 5

	fieldPositionLat     = 1
	fieldPositionLon     = 2
	fieldPositionBearing = 3
	fieldPositionSpeed   = 5

	fieldDescriptorID = 1
)

// Decode parses a raw vehicle positions payload. If the first pass yields no
// vehicles and the payload carries the gzip magic prefix, the payload is
// inflated and decoded once more. Decode never fails: malformed input narrows
// the result, worst case to an empty slice.
func Decode(raw []byte) []VehicleLocation {
	locs := decodeFeedMessage(raw)
	if len(locs) == 0 && isGzip(raw) {
		if inflated, err := gunzip(raw); err == nil {
			locs = decodeFeedMessage(inflated)
		}
	}
	return locs
}

// isGzip checks for the two-byte gzip magic prefix. The upstream endpoint
// sometimes serves gzip bodies regardless of transport headers.
func isGzip(b []byte) bool {
	return len(b) >= 2 && b[0] == 0x1f && b[1] == 0x8b
}

func gunzip(b []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer func() { _ = zr.Close() }()
	return io.ReadAll(zr)
}

func decodeFeedMessage(buf []byte) []VehicleLocation {
	r := wire.NewReader(buf)
	var locs []VehicleLocation
	for r.Remaining() > 0 {
		field, typ, ok := r.ReadKey()
		if !ok {
			break
		}
		if field == fieldFeedEntity && typ == wire.TypeBytes {
			ent, ok := r.ReadBytes()
			if !ok {
				break
			}
			if loc, ok := decodeEntity(ent); ok {
				locs = append(locs, loc)
			}
			continue
		}
		if !r.SkipField(typ) {
			break
		}
	}
	return locs
}

// decodeEntity parses one FeedEntity. An entity without a decodable position
// carrying both latitude and longitude is reported as not ok and dropped by
// the caller; decoding of sibling entities continues regardless. The vehicle
// descriptor id wins as the record identifier, the entity id is the fallback.
func decodeEntity(buf []byte) (VehicleLocation, bool) {
	r := wire.NewReader(buf)
	var loc VehicleLocation
	var entityID string
	havePos := false
loop:
	for r.Remaining() > 0 {
		field, typ, ok := r.ReadKey()
		if !ok {
			break
		}
		switch {
		case field == fieldEntityID && typ == wire.TypeBytes:
			b, ok := r.ReadBytes()
			if !ok {
				break loop
			}
			entityID = string(b)
		case field == fieldEntityVehicle && typ == wire.TypeBytes:
			b, ok := r.ReadBytes()
			if !ok {
				break loop
			}
			if decodeVehiclePosition(b, &loc) {
				havePos = true
			}
		default:
			if !r.SkipField(typ) {
				break loop
			}
		}
	}
	if loc.ID == "" {
		loc.ID = entityID
	}
	return loc, havePos
}

// decodeVehiclePosition parses a VehiclePosition message into loc and reports
// whether both latitude and longitude were decoded.
func decodeVehiclePosition(buf []byte, loc *VehicleLocation) bool {
	r := wire.NewReader(buf)
	havePos := false
	for r.Remaining() > 0 {
		field, typ, ok := r.ReadKey()
		if !ok {
			return havePos
		}
		switch {
		case field == fieldVehicleTrip && typ == wire.TypeBytes:
			b, ok := r.ReadBytes()
			if !ok {
				return havePos
			}
			decodeTripDescriptor(b, loc)
		case field == fieldVehiclePosition && typ == wire.TypeBytes:
			b, ok := r.ReadBytes()
			if !ok {
				return havePos
			}
			if decodePosition(b, loc) {
				havePos = true
			}
		case field == fieldVehicleTimestamp && typ == wire.TypeVarint:
			v, ok := r.ReadVarint()
			if !ok {
				return havePos
			}
			loc.Timestamp = &v
		case field == fieldVehicleDescriptor && typ == wire.TypeBytes:
			b, ok := r.ReadBytes()
			if !ok {
				return havePos
			}
			decodeVehicleDescriptor(b, loc)
		default:
			if !r.SkipField(typ) {
				return havePos
			}
		}
	}
	return havePos
}

func decodeTripDescriptor(buf []byte, loc *VehicleLocation) {
	r := wire.NewReader(buf)
	for r.Remaining() > 0 {
		field, typ, ok := r.ReadKey()
		if !ok {
			return
		}
		switch {
		case field == fieldTripID && typ == wire.TypeBytes:
			b, ok := r.ReadBytes()
			if !ok {
				return
			}
			s := string(b)
			loc.TripID = &s
		case field == fieldTripRoute && typ == wire.TypeBytes:
			b, ok := r.ReadBytes()
			if !ok {
				return
			}
			s := string(b)
			loc.RouteID = &s
		default:
			if !r.SkipField(typ) {
				return
			}
		}
	}
}

// decodePosition parses a Position message. Latitude, longitude, bearing and
// speed are 32-bit little-endian IEEE-754 floats; the odometer (field 4) is
// read and discarded through the generic skip path.
func decodePosition(buf []byte, loc *VehicleLocation) bool {
	r := wire.NewReader(buf)
	haveLat, haveLon := false, false
	for r.Remaining() > 0 {
		field, typ, ok := r.ReadKey()
		if !ok {
			break
		}
		if typ != wire.TypeFixed32 {
			if !r.SkipField(typ) {
				break
			}
			continue
		}
		bits, ok := r.ReadFixed32()
		if !ok {
			break
		}
		v := float64(math.Float32frombits(bits))
		switch field {
		case fieldPositionLat:
			loc.Latitude = v
			haveLat = true
		case fieldPositionLon:
			loc.Longitude = v
			haveLon = true
		case fieldPositionBearing:
			b := v
			loc.Bearing = &b
		case fieldPositionSpeed:
			s := v
			loc.SpeedMPS = &s
		}
	}
	return haveLat && haveLon
}

func decodeVehicleDescriptor(buf []byte, loc *VehicleLocation) {
	r := wire.NewReader(buf)
	for r.Remaining() > 0 {
		field, typ, ok := r.ReadKey()
		if !ok {
			return
		}
		if field == fieldDescriptorID && typ == wire.TypeBytes {
			b, ok := r.ReadBytes()
			if !ok {
				return
			}
			loc.ID = string(b)
			continue
		}
		if !r.SkipField(typ) {
			return
		}
	}
}
