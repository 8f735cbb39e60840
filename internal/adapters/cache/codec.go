package cache

import (
	"errors"
	"fmt"
	"sea-route-service/internal/domain"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Routes are stored as msgpack [lon, lat] pairs compressed with zstd.
// Payloads are shared by the Redis and SQL tiers.

var (
	encoder *zstd.Encoder
	decoder *zstd.Decoder
)

func init() {
	var err error
	if encoder, err = zstd.NewWriter(nil); err != nil {
		panic(fmt.Sprintf("route codec: zstd encoder: %v", err))
	}
	if decoder, err = zstd.NewReader(nil); err != nil {
		panic(fmt.Sprintf("route codec: zstd decoder: %v", err))
	}
}

const payloadVersion = 1

type routePayload struct {
	Version int          `msgpack:"v"`
	Points  [][2]float64 `msgpack:"p"`
}

func encodeRoute(route []domain.Coordinates) ([]byte, error) {
	p := routePayload{Version: payloadVersion, Points: make([][2]float64, len(route))}
	for i, c := range route {
		p.Points[i] = [2]float64{c.Lon, c.Lat}
	}

	raw, err := msgpack.Marshal(&p)
	if err != nil {
		return nil, fmt.Errorf("encode route: %w", err)
	}
	return encoder.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil
}

func decodeRoute(b []byte) ([]domain.Coordinates, error) {
	if len(b) == 0 {
		return nil, errors.New("decode route: empty payload")
	}

	raw, err := decoder.DecodeAll(b, nil)
	if err != nil {
		return nil, fmt.Errorf("decode route: decompress: %w", err)
	}

	var p routePayload
	if err := msgpack.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode route: %w", err)
	}
	if p.Version != payloadVersion {
		return nil, fmt.Errorf("decode route: unsupported payload version %d", p.Version)
	}

	out := make([]domain.Coordinates, len(p.Points))
	for i, pt := range p.Points {
		out[i] = domain.Coordinates{Lon: pt[0], Lat: pt[1]}
	}
	return out, nil
}
