package psd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/farcloser/primordium/fault"
	"gonum.org/v1/gonum/interp"

	"github.com/farcloser/murmur/internal/types"
)

var ErrInvalidText = errors.New("invalid psd text")

// ReadText reads a two-column "frequency value" table and resamples it onto length bins spaced
// deltaF apart. Lines starting with '#' or '%' and blank lines are skipped. When asd is set the
// values are amplitude spectral densities and are squared.
//
// Resampling is linear in log-frequency/log-value. Bins below lowCut are zero. If the table stops
// short of (length-1)*deltaF, the result is shortened to the highest covered bin.
func ReadText(r io.Reader, length int, deltaF, lowCut float64, asd bool) (*types.FrequencySeries, error) {
	if length < 1 || deltaF <= 0 {
		return nil, fmt.Errorf("%w: %d bins of %v Hz", ErrInvalidGrid, length, deltaF)
	}

	freqs, values, err := parseColumns(r)
	if err != nil {
		return nil, err
	}

	if asd {
		for i, v := range values {
			values[i] = v * v
		}
	}

	if freqs[0] > lowCut {
		return nil, fmt.Errorf("%w: lowest frequency %v Hz is above the low frequency cutoff %v Hz",
			ErrInvalidText, freqs[0], lowCut)
	}

	if last := freqs[len(freqs)-1]; float64(length-1)*deltaF > last {
		shortened := int(last/deltaF + 1)
		slog.Warn("psd table does not reach the requested maximum frequency, shortening",
			"requested_bins", length, "bins", shortened, "max_frequency", last)

		length = shortened
	}

	logF := make([]float64, 0, len(freqs))
	logV := make([]float64, 0, len(values))

	for i, f := range freqs {
		if f <= 0 {
			// No log-frequency for DC; it is below any usable cutoff anyway.
			continue
		}

		if values[i] <= 0 {
			return nil, fmt.Errorf("%w: non-positive value %v at %v Hz", ErrInvalidText, values[i], f)
		}

		logF = append(logF, math.Log(f))
		logV = append(logV, math.Log(values[i]))
	}

	if len(logF) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 positive frequencies", ErrInvalidText)
	}

	var pl interp.PiecewiseLinear
	if err = pl.Fit(logF, logV); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidText, err)
	}

	out := &types.FrequencySeries{Values: make([]float64, length), DeltaF: deltaF}

	for k := max(int(lowCut/deltaF), 1); k < length; k++ {
		out.Values[k] = math.Exp(pl.Predict(math.Log(float64(k) * deltaF)))
	}

	return out, nil
}

func parseColumns(r io.Reader) (freqs, values []float64, err error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "%") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, nil, fmt.Errorf("%w: line %d: expected 2 columns, got %d", ErrInvalidText, lineNo, len(fields))
		}

		f, ferr := strconv.ParseFloat(fields[0], 64)
		v, verr := strconv.ParseFloat(fields[1], 64)

		if ferr != nil || verr != nil {
			return nil, nil, fmt.Errorf("%w: line %d: %w", ErrInvalidText, lineNo, errors.Join(ferr, verr))
		}

		if n := len(freqs); n > 0 && f <= freqs[n-1] {
			return nil, nil, fmt.Errorf("%w: line %d: frequencies must increase", ErrInvalidText, lineNo)
		}

		freqs = append(freqs, f)
		values = append(values, v)
	}

	if err = scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	if len(freqs) == 0 {
		return nil, nil, fmt.Errorf("%w: no data", ErrInvalidText)
	}

	return freqs, values, nil
}
