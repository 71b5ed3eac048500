package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Results(data ResultsPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		writePageStart(w, "Game #"+utoa(data.GameID)+" results")
		raw(w, `      <p><a href="/">Back</a></p>
      <h1>Game #`)
		text(w, utoa(data.GameID))
		raw(w, `</h1>
      <section class="panel">
        <button id="switchView" data-game="`)
		text(w, utoa(data.GameID))
		raw(w, `">Switch view</button>
`)
		if data.View == "players" {
			writePlayerTable(w, data)
		} else {
			writeRoundTable(w, data)
		}
		raw(w, `      </section>
      <script>
        document.getElementById("switchView").addEventListener("click", async (event) => {
          const id = event.target.dataset.game;
          const res = await fetch("/api/games/" + id + "/results/switch", { method: "POST" });
          if (res.ok) {
            window.location.reload();
          }
        });
      </script>
`)
		raw(w, pageFoot)
		return nil
	})
}

func writePlayerTable(w io.Writer, data ResultsPage) {
	raw(w, "        <table>\n          <tr><th>Player</th>")
	for _, number := range data.Rounds {
		raw(w, "<th>")
		text(w, itoa(number))
		raw(w, "</th>")
	}
	raw(w, "<th>Total</th></tr>\n")
	for _, player := range data.Players {
		raw(w, "          <tr><td>")
		text(w, player.Name)
		raw(w, "</td>")
		for _, score := range player.Scores {
			raw(w, "<td>")
			text(w, itoa(score))
			raw(w, "</td>")
		}
		raw(w, "<td>")
		text(w, itoa(player.TotalScore))
		raw(w, "</td></tr>\n")
	}
	raw(w, "        </table>\n")
}

func writeRoundTable(w io.Writer, data ResultsPage) {
	raw(w, "        <table>\n          <tr><th>Round</th>")
	for _, column := range data.Columns {
		raw(w, `<th style="color: `)
		text(w, column.Color)
		raw(w, `">`)
		text(w, column.Name)
		raw(w, "</th>")
	}
	raw(w, "</tr>\n")
	for _, row := range data.Rows {
		if row.Total {
			raw(w, `          <tr class="total"><td>`)
		} else {
			raw(w, "          <tr><td>")
		}
		text(w, row.Label)
		raw(w, "</td>")
		for _, score := range row.Scores {
			raw(w, "<td>")
			text(w, itoa(score))
			raw(w, "</td>")
		}
		raw(w, "</tr>\n")
	}
	raw(w, "        </table>\n")
}
