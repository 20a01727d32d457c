// Package resthttp реализует REST API передачи файлов по частям. Основные эндпоинты:
//   - POST /api/upload/initiate — открывает multipart-сессию, выдаёт uploadId и fileKey.
//   - POST /api/upload/part — принимает одну часть как multipart-форму, возвращает eTag.
//   - POST /api/upload/complete — финализирует сессию, выдаёт downloadId для ссылки.
//   - GET /api/download/{id} — стримит объект с оригинальным именем и типом.
//   - GET /api/file/info/{id} — метаданные файла без тела.
//   - GET /health — достижимость бэкенда хранилища.
package resthttp
