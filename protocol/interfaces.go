package protocol

// PadCipher is the pad-encryption capability the coordinator invokes when an
// active party consumes a slot. Encrypt and Decrypt with the same slot index
// are inverses. Single use per slot is enforced by the coordinator's burn
// check, not by the cipher.
type PadCipher interface {
	Encrypt(slot int, plaintext []byte) ([]byte, error)
	Decrypt(slot int, ciphertext []byte) ([]byte, error)
}

// MessageSource supplies the plaintext an active party encrypts when it
// claims a slot.
type MessageSource interface {
	NextMessage(id PartyID, tick int) []byte
}

// MessageSourceFunc adapts a function to the MessageSource interface.
type MessageSourceFunc func(id PartyID, tick int) []byte

func (f MessageSourceFunc) NextMessage(id PartyID, tick int) []byte {
	return f(id, tick)
}
