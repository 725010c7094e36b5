// Package estimate buckets merged change requests into coarse effort sizes.
package estimate

import "github.com/clyang82/workflows/internal/model"

type bucket int

const (
	xs bucket = iota
	small
	medium
	large
	xl
)

var bucketNames = [...]string{"XS", "S", "M", "L", "XL"}

var bucketPoints = [...]int{1, 2, 3, 5, 8}

// ForChange buckets a change request by total lines changed and files
// touched. The larger of the two dimensions wins, so a small-line change
// spread over many files still counts as broad work.
func ForChange(lines, files int) model.Estimate {
	b := byLines(lines)
	if fb := byFiles(files); fb > b {
		b = fb
	}
	return model.Estimate{Bucket: bucketNames[b], Points: bucketPoints[b]}
}

func byLines(lines int) bucket {
	switch {
	case lines <= 20:
		return xs
	case lines <= 100:
		return small
	case lines <= 400:
		return medium
	case lines <= 1000:
		return large
	default:
		return xl
	}
}

func byFiles(files int) bucket {
	switch {
	case files <= 2:
		return xs
	case files <= 5:
		return small
	case files <= 15:
		return medium
	case files <= 30:
		return large
	default:
		return xl
	}
}
