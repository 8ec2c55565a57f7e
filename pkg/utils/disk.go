package utils

import "fmt"

// DiskInfo ข้อมูลพื้นที่ disk ของ filesystem
type DiskInfo struct {
	Total       uint64
	Free        uint64
	Used        uint64
	UsedPercent float64
}

// CheckDiskSpace เช็คว่า path มีพื้นที่ว่างพอสำหรับ requiredBytes
// และหลังใช้แล้วยังเหลือไม่ต่ำกว่า minFreePercent ของ disk
func CheckDiskSpace(path string, requiredBytes int64, minFreePercent float64) (bool, *DiskInfo, error) {
	if minFreePercent <= 0 {
		minFreePercent = 5.0
	}

	info, err := GetDiskInfo(path)
	if err != nil {
		return false, nil, err
	}

	if int64(info.Free) < requiredBytes {
		return false, info, nil
	}

	remaining := int64(info.Free) - requiredBytes
	remainingPercent := float64(remaining) / float64(info.Total) * 100
	if remainingPercent < minFreePercent {
		return false, info, nil
	}

	return true, info, nil
}

// FormatBytes แปลง bytes เป็นรูปแบบอ่านง่าย
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// DiskSpaceError พื้นที่ disk ไม่พอสำหรับ scratch workspace
type DiskSpaceError struct {
	Required  int64
	Available uint64
}

func (e *DiskSpaceError) Error() string {
	return fmt.Sprintf("insufficient disk space: required %s, available %s",
		FormatBytes(uint64(e.Required)),
		FormatBytes(e.Available),
	)
}
