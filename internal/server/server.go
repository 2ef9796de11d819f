// Сервер объединяет специфичные HTTP сервера, отвечающие за обработку
// конкретных сущностей.
package server

type Server struct {
	LookupServer
	SearchServer
	SystemServer
}

func NewServer(
	lookupServer LookupServer,
	searchServer SearchServer,
	systemServer SystemServer,
) Server {
	return Server{
		LookupServer: lookupServer,
		SearchServer: searchServer,
		SystemServer: systemServer,
	}
}
