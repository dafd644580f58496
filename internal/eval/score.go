package eval

// Score bounds in centipawns. MateScore sits below Infinity so that mate
// scores shifted by search ply never collide with the infinity sentinels,
// and MateThreshold leaves room for mates found hundreds of plies deep.
const (
	Infinity      = 20000
	MateScore     = 19000
	MateThreshold = MateScore - 512
	DrawScore     = 0
)

// IsMateScore reports whether a score encodes a forced mate for either side.
func IsMateScore(score int) bool {
	return score >= MateThreshold || score <= -MateThreshold
}

// MateIn converts a mate score into the number of plies until mate,
// positive when the side to move mates, negative when it is mated.
func MateIn(score int) int {
	if score >= MateThreshold {
		return MateScore - score
	}
	if score <= -MateThreshold {
		return -(MateScore + score)
	}
	return 0
}

// SaturatingAdd adds two scores, clamping the result to [-Infinity, Infinity]
// so mate arithmetic near the bounds cannot wrap.
func SaturatingAdd(a, b int) int {
	sum := a + b
	if sum > Infinity {
		return Infinity
	}
	if sum < -Infinity {
		return -Infinity
	}
	return sum
}

// SaturatingNeg negates a score, mapping -Infinity to Infinity exactly.
func SaturatingNeg(score int) int {
	if score <= -Infinity {
		return Infinity
	}
	if score >= Infinity {
		return -Infinity
	}
	return -score
}
