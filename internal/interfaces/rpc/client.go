package rpc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// Client es el borde de comunicación que usan los llamadores (la UI de
// escritorio): una conexión nueva por llamada, una petición, una respuesta.
// Todo fallo de red se envuelve en domain.ErrTransport y se entrega como
// respuesta de fallo de comunicación; nunca se reintenta automáticamente ni
// se propaga un error crudo hacia arriba.
type Client struct {
	addr    string
	timeout time.Duration
}

// NewClient construye el cliente. timeout cubre dial, escritura y lectura.
func NewClient(addr string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{addr: addr, timeout: timeout}
}

// Call ejecuta un ciclo petición/respuesta completo.
func (c *Client) Call(action, entity string, payload any) (Response, error) {
	req := Request{Action: action, Entity: entity}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return Response{}, fmt.Errorf("serializar payload: %w", err)
		}
		req.Payload = raw
	}

	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return transportFailure(), fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(c.timeout))

	out, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("serializar petición: %w", err)
	}
	if _, err := conn.Write(append(out, '\n')); err != nil {
		return transportFailure(), fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && len(line) == 0 {
		return transportFailure(), fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return transportFailure(), fmt.Errorf("%w: respuesta malformada", domain.ErrTransport)
	}
	return resp, nil
}

// transportFailure es la respuesta genérica de fallo de comunicación que ve
// la capa de UI.
func transportFailure() Response {
	return NewError(domain.ErrTransport.Error())
}
