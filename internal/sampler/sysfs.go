package sampler

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// -----------------------------------------------------------------------------
// sysfs hardware monitor listing
//
// Two trees expose temperatures on Linux:
//
//  1. /sys/class/hwmon/hwmon*/temp*_input
//     - chip drivers (coretemp, k10temp, amdgpu, nvme ...)
//     - chip name in "name", optional per-input label in temp*_label
//       e.g. coretemp + "Package id 0", coretemp + "Core 0"
//
//  2. /sys/class/thermal/thermal_zone*/temp
//     - ACPI / SoC zones, zone name in "type"
//       e.g. "cpu-thermal" on Raspberry Pi, "x86_pkg_temp" on Intel
//
// Values are millidegrees Celsius in both trees.
// -----------------------------------------------------------------------------

// readMilliC reads a sysfs integer in millidegrees and returns °C.
func readMilliC(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, err
	}
	return float64(v) / 1000.0, nil
}

func readTrimmed(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// sysfsSensors lists every readable temperature under root (normally
// /sys/class), hwmon chips first, then thermal zones. Unreadable entries are
// skipped.
func sysfsSensors(root string) []HardwareSensor {
	var out []HardwareSensor

	chips, _ := filepath.Glob(filepath.Join(root, "hwmon", "hwmon*"))
	sort.Strings(chips)
	for _, chip := range chips {
		chipName := readTrimmed(filepath.Join(chip, "name"))

		inputs, _ := filepath.Glob(filepath.Join(chip, "temp*_input"))
		sort.Strings(inputs)
		for _, in := range inputs {
			v, err := readMilliC(in)
			if err != nil {
				continue
			}
			name := chipName
			label := readTrimmed(strings.TrimSuffix(in, "_input") + "_label")
			if label != "" {
				name = strings.TrimSpace(chipName + " " + label)
			}
			out = append(out, HardwareSensor{Type: "Temperature", Name: name, Value: v})
		}
	}

	zones, _ := filepath.Glob(filepath.Join(root, "thermal", "thermal_zone*"))
	sort.Strings(zones)
	for _, z := range zones {
		v, err := readMilliC(filepath.Join(z, "temp"))
		if err != nil {
			continue
		}
		out = append(out, HardwareSensor{
			Type:  "Temperature",
			Name:  readTrimmed(filepath.Join(z, "type")),
			Value: v,
		})
	}

	return out
}
