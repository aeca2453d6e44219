package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
)

// Claims son los datos que viajan dentro del token de acceso de un operador.
// El rol que llega del cliente es dato no confiable: cada operación protegida
// vuelve a validarse contra estos claims firmados, nunca contra el body.
type Claims struct {
	OperadorID int
	Rol        domain.RolOperador
}

// NewAccessToken firma un JWT HS256 con subject, rol y expiración.
func NewAccessToken(secret string, operadorID int, rol domain.RolOperador, ttlMin int) (string, time.Time, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", operadorID),
		"role": string(rol),
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error firmando token: %w", err)
	}
	return signed, exp, nil
}

// ParseAccessToken valida firma y expiración y devuelve los claims.
func ParseAccessToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token inválido: %w", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}

	sub, err := mapClaims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("subject ausente: %w", err)
	}
	var operadorID int
	if _, err := fmt.Sscanf(sub, "%d", &operadorID); err != nil {
		return nil, fmt.Errorf("subject inválido: %w", err)
	}

	rol, _ := mapClaims["role"].(string)
	c := &Claims{OperadorID: operadorID, Rol: domain.RolOperador(rol)}
	if !c.Rol.EsValido() {
		return nil, fmt.Errorf("rol desconocido en el token: %q", rol)
	}
	return c, nil
}
