// ABOUTME: Tests for audio types
// ABOUTME: Tests layout conversions and sample format helpers
package audio

import "testing"

func TestInterleaveStereo(t *testing.T) {
	left := []float32{0.1, 0.2, 0.3}
	right := []float32{-0.1, -0.2, -0.3}

	out := Interleave([][]float32{left, right})

	expected := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}
	if len(out) != len(expected) {
		t.Fatalf("expected %d samples, got %d", len(expected), len(out))
	}
	for i, v := range expected {
		if out[i] != v {
			t.Errorf("sample %d: expected %f, got %f", i, v, out[i])
		}
	}
}

func TestInterleaveMono(t *testing.T) {
	mono := []float32{0.5, -0.5}

	out := Interleave([][]float32{mono})

	if len(out) != 2 || out[0] != 0.5 || out[1] != -0.5 {
		t.Errorf("mono interleave should be identity, got %v", out)
	}
}

func TestInterleaveEmpty(t *testing.T) {
	if out := Interleave(nil); out != nil {
		t.Errorf("expected nil for empty input, got %v", out)
	}
}

func TestDeinterleaveRoundTrip(t *testing.T) {
	channels := [][]float32{
		{0.1, 0.2, 0.3, 0.4},
		{0.5, 0.6, 0.7, 0.8},
	}

	back := Deinterleave(Interleave(channels), 2)

	if len(back) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(back))
	}
	for c := range channels {
		for i := range channels[c] {
			if back[c][i] != channels[c][i] {
				t.Errorf("channel %d sample %d: expected %f, got %f",
					c, i, channels[c][i], back[c][i])
			}
		}
	}
}

// Interleaving blocks separately then concatenating must equal interleaving
// the concatenation: ingest order never depends on how input was chunked.
func TestInterleaveChunkingInvariance(t *testing.T) {
	blockA := [][]float32{{0.1, 0.2}, {0.3, 0.4}}
	blockB := [][]float32{{0.5}, {0.6}}
	whole := [][]float32{{0.1, 0.2, 0.5}, {0.3, 0.4, 0.6}}

	chunked := append(Interleave(blockA), Interleave(blockB)...)
	atOnce := Interleave(whole)

	if len(chunked) != len(atOnce) {
		t.Fatalf("length mismatch: %d vs %d", len(chunked), len(atOnce))
	}
	for i := range atOnce {
		if chunked[i] != atOnce[i] {
			t.Errorf("sample %d: chunked %f != whole %f", i, chunked[i], atOnce[i])
		}
	}
}

func TestSampleFromInt16(t *testing.T) {
	tests := []struct {
		name     string
		input    int16
		expected float32
	}{
		{"zero", 0, 0},
		{"max", 32767, 32767.0 / 32768.0},
		{"min", -32768, -1.0},
		{"half", 16384, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleFromInt16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %f, got %f", tt.expected, result)
			}
		})
	}
}

func TestSampleToInt16Clipping(t *testing.T) {
	if got := SampleToInt16(2.0); got != 32767 {
		t.Errorf("expected clip to 32767, got %d", got)
	}
	if got := SampleToInt16(-2.0); got != -32768 {
		t.Errorf("expected clip to -32768, got %d", got)
	}
	if got := SampleToInt16(0); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestSampleFrom24Bit(t *testing.T) {
	// 0x800000 is the most negative 24-bit value
	if got := SampleFrom24Bit([3]byte{0x00, 0x00, 0x80}); got != -1.0 {
		t.Errorf("expected -1.0, got %f", got)
	}
	if got := SampleFrom24Bit([3]byte{0x00, 0x00, 0x00}); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
}

func TestSampleFromBits(t *testing.T) {
	if got := SampleFromBits(-32768, 16); got != -1.0 {
		t.Errorf("16-bit min: expected -1.0, got %f", got)
	}
	if got := SampleFromBits(4194304, 24); got != 0.5 {
		t.Errorf("24-bit half: expected 0.5, got %f", got)
	}
}
