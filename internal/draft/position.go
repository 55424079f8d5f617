package draft

// Bucket is a protection-limit category
type Bucket string

const (
	BucketQB           Bucket = "QB"
	BucketRB           Bucket = "RB"
	BucketWR           Bucket = "WR"
	BucketTE           Bucket = "TE"
	BucketK            Bucket = "K"
	BucketIDP          Bucket = "IDP"
	BucketFlex         Bucket = "FLEX"
	BucketSuperflex    Bucket = "SUPERFLEX"
	BucketUnclassified Bucket = "UNCLASSIFIED"
)

// PositionOrder is the display order for roster listings
var PositionOrder = []string{"QB", "RB", "WR", "TE", "K", "DL", "DE", "LB", "DB"}

// BucketFor maps a position code to its primary bucket
func BucketFor(position string) Bucket {
	switch position {
	case "QB":
		return BucketQB
	case "RB":
		return BucketRB
	case "WR":
		return BucketWR
	case "TE":
		return BucketTE
	case "K":
		return BucketK
	case "DL", "LB", "DB", "DE":
		return BucketIDP
	default:
		return BucketUnclassified
	}
}

// FlexEligible reports whether a position may fill a FLEX spot
func FlexEligible(position string) bool {
	switch position {
	case "RB", "WR", "TE":
		return true
	}
	return false
}

// SuperflexEligible reports whether a position may fill a SUPERFLEX spot
func SuperflexEligible(position string) bool {
	return position == "QB" || FlexEligible(position)
}

// PositionRank returns the display index of a position; unknown positions sort last
func PositionRank(position string) int {
	for i, p := range PositionOrder {
		if p == position {
			return i
		}
	}
	return len(PositionOrder)
}
