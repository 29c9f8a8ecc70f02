package entity

// Client cliente de la agencia al que se le imputa tiempo.
type Client struct {
	ID   string
	Name string
}
