// Comando conteo: sesión de contagem en terminal sobre el mismo núcleo que la API.
//
//	conteo sessao --operador ana --senha ****   sesión interactiva
//	conteo validar                             revisa la planilla base y la configuración
//	conteo version
package main

func main() {
	Execute()
}
