package color

import "math"

// APCA (Accessible Perceptual Contrast Algorithm) constants, SAPC-4g
// revision. Unlike the WCAG 2.1 ratio, APCA is signed and polarity-aware:
// the luminance exponents differ for dark-on-light (normal) versus
// light-on-dark (reverse) presentation.
const (
	apcaBlackThreshold = 0.022
	apcaBlackExponent  = 1.414

	apcaNormalBG   = 0.56
	apcaNormalTXT  = 0.57
	apcaReverseBG  = 0.65
	apcaReverseTXT = 0.62

	apcaScale     = 1.14
	apcaLowClip   = 0.1
	apcaLowOffset = 0.027
)

// apcaLuminance computes the APCA screen luminance estimate: a simple
// 2.4-gamma decode weighted by sRGB coefficients, followed by a soft
// clamp that lifts near-black values.
func apcaLuminance(c Color) float64 {
	y := 0.2126729*apcaChannel(c.R) + 0.7151522*apcaChannel(c.G) + 0.0721750*apcaChannel(c.B)
	if y < apcaBlackThreshold {
		y += math.Pow(apcaBlackThreshold-y, apcaBlackExponent)
	}
	return y
}

func apcaChannel(ch uint8) float64 {
	return math.Pow(float64(ch)/255, 2.4)
}

// APCAContrast computes the signed APCA lightness contrast (Lc) for text
// on background, scaled to roughly [-108, 108]. Positive values indicate
// dark text on a light background, negative the reverse. Contrasts with
// a sub-threshold luminance delta clamp to 0.
func APCAContrast(text, background Color) float64 {
	ytxt := apcaLuminance(text)
	ybg := apcaLuminance(background)

	var sapc float64
	if ybg > ytxt {
		// Normal polarity: dark text on light background.
		sapc = (math.Pow(ybg, apcaNormalBG) - math.Pow(ytxt, apcaNormalTXT)) * apcaScale
		if sapc < apcaLowClip {
			return 0
		}
		return (sapc - apcaLowOffset) * 100
	}

	// Reverse polarity: light text on dark background.
	sapc = (math.Pow(ybg, apcaReverseBG) - math.Pow(ytxt, apcaReverseTXT)) * apcaScale
	if sapc > -apcaLowClip {
		return 0
	}
	return (sapc + apcaLowOffset) * 100
}
