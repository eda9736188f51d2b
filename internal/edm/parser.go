package edm

import "sync"

// Parser is the host-facing entry point: it owns one file's immutable
// Metadata and lazily decodes, then caches, each flight on demand.
type Parser struct {
	data     []byte
	metadata *Metadata
	unit     TempUnit

	mu     sync.RWMutex
	cache  map[uint16]*Flight
	locate []locateResult
}

// Open parses the ASCII header of a whole-file byte buffer and returns a
// Parser ready to decode flights on demand. Fatal structural faults
// (missing $U, missing $L, checksum mismatch) are returned as errors;
// everything else is deferred to per-flight decoding.
func Open(data []byte, unit TempUnit) (*Parser, error) {
	return openWithMode(data, unit, ChecksumModeXOR)
}

// OpenWithMode is Open with an explicit checksum mode, used by callers
// (e.g. the CLI's config-driven checksum probe) that want to try a
// non-default mode first.
func OpenWithMode(data []byte, unit TempUnit, mode ChecksumMode) (*Parser, error) {
	return openWithMode(data, unit, mode)
}

func openWithMode(data []byte, unit TempUnit, mode ChecksumMode) (*Parser, error) {
	if len(data) < 2 {
		return nil, &HeaderParseError{Reason: "Not a valid JPI file"}
	}
	md, err := parseHeader(data, mode)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		data:     data,
		metadata: md,
		unit:     unit,
		cache:    make(map[uint16]*Flight),
	}
	p.locate = locateFlights(data, md.BinaryOffset, md.FlightIndex)
	return p, nil
}

// TailNumber returns the aircraft's registration, or nil if the header
// carried none.
func (p *Parser) TailNumber() *string {
	if p.metadata.TailNumber == "" {
		return nil
	}
	t := p.metadata.TailNumber
	return &t
}

// ModelString renders the EDM model number, e.g. "EDM-830", or
// "Unknown".
func (p *Parser) ModelString() string {
	return p.metadata.ModelString()
}

// Metadata returns the file's parsed, immutable header metadata.
func (p *Parser) Metadata() *Metadata {
	return p.metadata
}

// FlightCount returns the number of flights listed in the header index.
func (p *Parser) FlightCount() int {
	return len(p.metadata.FlightIndex)
}

// Flight decodes (or returns the cached decode of) the flight with the
// given flight number. Returns nil if no such flight number is in the
// index; per-flight decode faults become warnings on the Flight rather
// than an error here.
func (p *Parser) Flight(number uint16) *Flight {
	p.mu.RLock()
	if f, ok := p.cache[number]; ok {
		p.mu.RUnlock()
		return f
	}
	p.mu.RUnlock()

	idx := -1
	for i, e := range p.metadata.FlightIndex {
		if e.FlightNumber == number {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	f := decodeOneFlight(p.data, p.metadata.FlightIndex[idx], p.locate[idx], p.unit)

	p.mu.Lock()
	if cached, ok := p.cache[number]; ok {
		p.mu.Unlock()
		return cached
	}
	p.cache[number] = f
	p.mu.Unlock()
	return f
}

// Flights decodes and returns every flight in the header index, in
// index order.
func (p *Parser) Flights() []*Flight {
	flights := make([]*Flight, 0, len(p.metadata.FlightIndex))
	for _, e := range p.metadata.FlightIndex {
		flights = append(flights, p.Flight(e.FlightNumber))
	}
	return flights
}
