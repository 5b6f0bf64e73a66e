// Package diskinfo reports volume capacity for the disk-usage header.
package diskinfo

import (
	"github.com/shirou/gopsutil/v4/disk"
)

// Info is a point-in-time snapshot of one volume.
type Info struct {
	Path        string
	TotalBytes  uint64
	UsedBytes   uint64
	FreeBytes   uint64
	UsedPercent float64
}

// Usage returns the capacity of the volume holding path.
func Usage(path string) (Info, error) {
	u, err := disk.Usage(path)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Path:        u.Path,
		TotalBytes:  u.Total,
		UsedBytes:   u.Used,
		FreeBytes:   u.Free,
		UsedPercent: u.UsedPercent,
	}, nil
}
