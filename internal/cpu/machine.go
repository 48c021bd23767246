package cpu

// MachineInfo identifies the host kernel and hardware.
type MachineInfo struct {
	Sysname string `json:"sysname"`
	Release string `json:"release"`
	Machine string `json:"machine"`
}
