package set_pet

// SetPetRequest запрос на выбор питомца
type SetPetRequest struct {
	PetID int64 `json:"petId"`
}
