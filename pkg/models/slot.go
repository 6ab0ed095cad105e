package models

import (
	"fmt"
	"strings"
)

// TimeSlot is the part of the day a murojaah session is held in
type TimeSlot string

const (
	SlotBadaShubuh  TimeSlot = "bada shubuh"
	SlotPagiHari    TimeSlot = "pagi hari"
	SlotSiangHari   TimeSlot = "siang hari"
	SlotBadaDzuhur  TimeSlot = "bada dzuhur"
	SlotSoreHari    TimeSlot = "sore hari"
	SlotBadaAshar   TimeSlot = "bada ashar"
	SlotBadaMaghrib TimeSlot = "bada maghrib"
	SlotBadaIsya    TimeSlot = "bada isya"
	SlotMalamHari   TimeSlot = "malam hari"
)

// TimeSlots lists every slot in chronological order
var TimeSlots = []TimeSlot{
	SlotBadaShubuh,
	SlotPagiHari,
	SlotSiangHari,
	SlotBadaDzuhur,
	SlotSoreHari,
	SlotBadaAshar,
	SlotBadaMaghrib,
	SlotBadaIsya,
	SlotMalamHari,
}

var slotLabels = map[TimeSlot]string{
	SlotBadaShubuh:  "Ba'da Shubuh",
	SlotPagiHari:    "Pagi Hari",
	SlotSiangHari:   "Siang Hari",
	SlotBadaDzuhur:  "Ba'da Dzuhur",
	SlotSoreHari:    "Sore Hari",
	SlotBadaAshar:   "Ba'da Ashar",
	SlotBadaMaghrib: "Ba'da Maghrib",
	SlotBadaIsya:    "Ba'da Isya",
	SlotMalamHari:   "Malam Hari",
}

// Label returns the display name, e.g. "Ba'da Shubuh"
func (s TimeSlot) Label() string {
	if l, ok := slotLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is one of the nine known slots
func (s TimeSlot) Valid() bool {
	_, ok := slotLabels[s]
	return ok
}

// ParseTimeSlot accepts the wire value, the display label or a compact form
// such as "badashubuh", "bada_isya" or "ba'da maghrib". A 1-based index into
// TimeSlots is accepted as well.
func ParseTimeSlot(input string) (TimeSlot, error) {
	key := normalizeSlot(input)
	if key == "" {
		return "", fmt.Errorf("waktu murojaah kosong")
	}

	for i, slot := range TimeSlots {
		if key == normalizeSlot(string(slot)) || key == fmt.Sprint(i+1) {
			return slot, nil
		}
	}
	return "", fmt.Errorf("waktu murojaah %q tidak dikenal", input)
}

func normalizeSlot(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("'", "", "’", "", " ", "", "_", "", "-", "").Replace(s)
}
