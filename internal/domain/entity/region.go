package entity

// Region entrada del directorio regional (leída de archivos JSON estáticos).
type Region struct {
	Region string   `json:"region"`
	Cities []string `json:"cities"`
}
