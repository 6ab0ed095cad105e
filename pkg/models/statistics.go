package models

// ProductiveDay is the day with the most completed pages
type ProductiveDay struct {
	Tanggal             string `json:"tanggal"`
	TotalSelesaiHalaman int    `json:"total_selesai_halaman"`
}

// Statistics is the aggregate returned by /log-harian/statistik
type Statistics struct {
	TotalSelesaiHalaman    int           `json:"total_selesai_halaman"`
	TotalHariAktif         int           `json:"total_hari_aktif"`
	RataRataHalamanPerHari float64       `json:"rata_rata_halaman_per_hari"`
	SesiPalingProduktif    string        `json:"sesi_paling_produktif"`
	HariPalingProduktif    ProductiveDay `json:"hari_paling_produktif"`
}
